package main

import (
	"context"

	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/plugin"
	"github.com/pkg/errors"
)

// mixReplyProp marks posts created by the passive listener.
const mixReplyProp = "from_emojimix"

// MessageHasBeenPosted answers short messages made of two different emoji with their mix.
func (p *Plugin) MessageHasBeenPosted(_ *plugin.Context, post *model.Post) {
	if !p.shouldMix(post) {
		return
	}

	m := p.getConfiguration().mixer
	reply, ok := m.Passive(context.Background(), post.Message)
	if !ok {
		return
	}

	if err := p.postReply(post, reply.Markdown(m.Config().ImageSize)); err != nil {
		p.logger.LogError("Failed to post mix reply", "error", err.Error(), "post_id", post.Id, "channel_id", post.ChannelId)
		return
	}

	p.logger.LogDebug("Posted mix reply", "post_id", post.Id, "outcome", reply.Outcome.String())
}

// shouldMix filters out posts the passive listener must never answer.
func (p *Plugin) shouldMix(post *model.Post) bool {
	if post == nil || post.Message == "" || post.IsSystemMessage() {
		return false
	}
	if p.botUserID == "" || post.UserId == p.botUserID {
		return false
	}
	if isBotPost(post) {
		return false
	}

	config := p.getConfiguration()
	return !config.DisablePassiveTrigger && config.mixer != nil
}

func isBotPost(post *model.Post) bool {
	if post.GetProp(mixReplyProp) != nil {
		return true
	}
	switch fromBot := post.GetProp(model.PostPropsFromBot).(type) {
	case bool:
		return fromBot
	case string:
		return fromBot == "true"
	}
	return false
}

// postReply creates message as the bot in the thread of post.
func (p *Plugin) postReply(post *model.Post, message string) error {
	rootID := post.RootId
	if rootID == "" {
		rootID = post.Id
	}

	reply := &model.Post{
		UserId:    p.botUserID,
		ChannelId: post.ChannelId,
		RootId:    rootID,
		Message:   message,
	}
	reply.AddProp(mixReplyProp, true)

	if _, appErr := p.API.CreatePost(reply); appErr != nil {
		return errors.Wrap(appErr, "failed to create reply post")
	}
	return nil
}
