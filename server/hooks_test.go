package main

import (
	"testing"

	"github.com/mattermost/mattermost/server/public/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMessageHasBeenPosted_PostsMix(t *testing.T) {
	p, api := setupPluginForTest(t, &snapshotProber{date: "20250130"})

	api.On("CreatePost", mock.MatchedBy(func(post *model.Post) bool {
		return post.UserId == testBotUserID &&
			post.ChannelId == "channel-id" &&
			post.RootId == "post-id" &&
			post.Message == "![😊 + 🐶]("+mixedURL+" =128x128)" &&
			post.GetProp(mixReplyProp) == true
	})).Return(&model.Post{Id: "reply-id"}, nil).Once()

	p.MessageHasBeenPosted(nil, &model.Post{
		Id:        "post-id",
		UserId:    "user-id",
		ChannelId: "channel-id",
		Message:   "😊🐶",
	})

	api.AssertExpectations(t)
}

func TestMessageHasBeenPosted_RepliesInExistingThread(t *testing.T) {
	p, api := setupPluginForTest(t, &snapshotProber{date: "20250130"})

	api.On("CreatePost", mock.MatchedBy(func(post *model.Post) bool {
		return post.RootId == "root-id"
	})).Return(&model.Post{Id: "reply-id"}, nil).Once()

	p.MessageHasBeenPosted(nil, &model.Post{
		Id:        "post-id",
		RootId:    "root-id",
		UserId:    "user-id",
		ChannelId: "channel-id",
		Message:   "😊 🐶",
	})

	api.AssertExpectations(t)
}

func TestMessageHasBeenPosted_NotFoundReply(t *testing.T) {
	p, api := setupPluginForTest(t, &snapshotProber{})

	api.On("CreatePost", mock.MatchedBy(func(post *model.Post) bool {
		return post.Message == "😟 Sorry, no mix found for 😊 and 🐶.\nThis pair may not exist, or one of them is not a standard emoji."
	})).Return(&model.Post{Id: "reply-id"}, nil).Once()

	p.MessageHasBeenPosted(nil, &model.Post{Id: "post-id", UserId: "user-id", ChannelId: "channel-id", Message: "😊🐶"})

	api.AssertExpectations(t)
}

func TestMessageHasBeenPosted_Ignored(t *testing.T) {
	botProps := model.StringInterface{model.PostPropsFromBot: "true"}
	ownProps := model.StringInterface{mixReplyProp: true}

	tests := []struct {
		name string
		post *model.Post
	}{
		{name: "nil post", post: nil},
		{name: "own post", post: &model.Post{Id: "p", UserId: testBotUserID, Message: "😊🐶"}},
		{name: "other bot", post: &model.Post{Id: "p", UserId: "other-bot", Message: "😊🐶", Props: botProps}},
		{name: "mix reply", post: &model.Post{Id: "p", UserId: "user-id", Message: "😊🐶", Props: ownProps}},
		{name: "system message", post: &model.Post{Id: "p", UserId: "user-id", Message: "😊🐶", Type: model.PostTypeJoinChannel}},
		{name: "long message", post: &model.Post{Id: "p", UserId: "user-id", Message: "look at these 😊🐶"}},
		{name: "identical pair", post: &model.Post{Id: "p", UserId: "user-id", Message: "😊😊"}},
		{name: "single emoji", post: &model.Post{Id: "p", UserId: "user-id", Message: "😊"}},
		{name: "empty message", post: &model.Post{Id: "p", UserId: "user-id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := &snapshotProber{date: "20250130"}
			p, api := setupPluginForTest(t, prober)

			p.MessageHasBeenPosted(nil, tt.post)

			api.AssertNotCalled(t, "CreatePost", mock.Anything)
			assert.Zero(t, prober.Calls())
		})
	}
}

func TestMessageHasBeenPosted_PassiveTriggerDisabled(t *testing.T) {
	prober := &snapshotProber{date: "20250130"}
	p, api := setupPluginForTest(t, prober)

	config := p.getConfiguration().Clone()
	config.DisablePassiveTrigger = true
	p.setConfiguration(config)

	p.MessageHasBeenPosted(nil, &model.Post{Id: "p", UserId: "user-id", Message: "😊🐶"})

	api.AssertNotCalled(t, "CreatePost", mock.Anything)
	assert.Zero(t, prober.Calls())
}

func TestMessageHasBeenPosted_NotActivated(t *testing.T) {
	prober := &snapshotProber{date: "20250130"}
	p, api := setupPluginForTest(t, prober)
	p.botUserID = ""

	p.MessageHasBeenPosted(nil, &model.Post{Id: "p", UserId: "user-id", Message: "😊🐶"})

	api.AssertNotCalled(t, "CreatePost", mock.Anything)
}

func TestMessageHasBeenPosted_CreatePostFails(t *testing.T) {
	p, api := setupPluginForTest(t, &snapshotProber{date: "20250130"})

	api.On("CreatePost", mock.AnythingOfType("*model.Post")).
		Return(nil, model.NewAppError("CreatePost", "app.post.save.app_error", nil, "", 500)).Once()

	assert.NotPanics(t, func() {
		p.MessageHasBeenPosted(nil, &model.Post{Id: "p", UserId: "user-id", ChannelId: "c", Message: "😊🐶"})
	})
	api.AssertExpectations(t)
}
