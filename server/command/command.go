// Package command implements slash command handlers for the Emoji Mix plugin.
package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattermost/mattermost-plugin-emojimix/server/mixer"
	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/pluginapi"
)

// Mixer is the part of the mixer used by slash commands
type Mixer interface {
	MixText(ctx context.Context, text string) mixer.Reply
	Config() mixer.Config
}

// PluginAccessor defines the interface for plugin functionality needed by command handlers
type PluginAccessor interface {
	// GetMixer returns the mixer built from the active configuration
	GetMixer() Mixer

	// Mattermost API access
	GetPluginAPIClient() *pluginapi.Client
}

// Handler implements slash command processing for the Emoji Mix plugin.
type Handler struct {
	plugin PluginAccessor
	client *pluginapi.Client
}

// Command defines the interface for handling Emoji Mix slash commands.
type Command interface {
	Handle(args *model.CommandArgs) (*model.CommandResponse, error)
}

const (
	mixCommandTrigger   = "emojimix"
	aliasCommandTrigger = "mix"
)

func commandDefinition(trigger string) *model.Command {
	return &model.Command{
		Trigger:          trigger,
		AutoComplete:     true,
		AutoCompleteDesc: "Mix two emoji into one image",
		AutoCompleteHint: "[emoji][emoji]",
		AutocompleteData: model.NewAutocompleteData(trigger, "[emoji][emoji]", "Two different emoji, e.g. 😊🐶"),
	}
}

// NewCommandHandler registers the mix command and its alias.
func NewCommandHandler(plugin PluginAccessor) Command {
	client := plugin.GetPluginAPIClient()

	for _, trigger := range []string{mixCommandTrigger, aliasCommandTrigger} {
		if err := client.SlashCommand.Register(commandDefinition(trigger)); err != nil {
			client.Log.Error("Failed to register command", "trigger", trigger, "error", err)
		}
	}

	return &Handler{
		plugin: plugin,
		client: client,
	}
}

// Handle processes slash commands registered by the Emoji Mix plugin.
func (c *Handler) Handle(args *model.CommandArgs) (*model.CommandResponse, error) {
	fields := strings.Fields(args.Command)
	if len(fields) == 0 {
		return unknownCommand(args), nil
	}

	trigger := strings.TrimPrefix(fields[0], "/")
	switch trigger {
	case mixCommandTrigger, aliasCommandTrigger:
		return c.executeMixCommand(args, fields[0]), nil
	default:
		return unknownCommand(args), nil
	}
}

func unknownCommand(args *model.CommandArgs) *model.CommandResponse {
	return &model.CommandResponse{
		ResponseType: model.CommandResponseTypeEphemeral,
		Text:         fmt.Sprintf("Unknown command: %s", args.Command),
	}
}

func (c *Handler) executeMixCommand(args *model.CommandArgs, trigger string) *model.CommandResponse {
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(args.Command), trigger))

	m := c.plugin.GetMixer()
	if m == nil {
		return &model.CommandResponse{
			ResponseType: model.CommandResponseTypeEphemeral,
			Text:         "❌ Emoji Mix is not configured. Check the plugin settings in the System Console.",
		}
	}

	reply := m.MixText(context.Background(), text)
	if !reply.IsImage() {
		return &model.CommandResponse{
			ResponseType: model.CommandResponseTypeEphemeral,
			Text:         reply.Text,
		}
	}

	c.client.Log.Debug("Posting emoji mix", "user_id", args.UserId, "channel_id", args.ChannelId, "url", reply.ImageURL)
	return &model.CommandResponse{
		ResponseType: model.CommandResponseTypeInChannel,
		Text:         reply.Markdown(m.Config().ImageSize),
	}
}
