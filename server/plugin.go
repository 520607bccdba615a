package main

import (
	"net/http"
	"sync"

	"github.com/mattermost/logr/v2"
	"github.com/mattermost/mattermost-plugin-emojimix/server/command"
	"github.com/mattermost/mattermost-plugin-emojimix/server/kitchen"
	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/plugin"
	"github.com/mattermost/mattermost/server/public/pluginapi"
	"github.com/pkg/errors"
)

const (
	botUsername    = "emojimix"
	botDisplayName = "Emoji Mix"
	botDescription = "Mixes two emoji into one image."
)

// Plugin implements the interface expected by the Mattermost server to communicate between the server and plugin processes.
type Plugin struct {
	plugin.MattermostPlugin

	// client is the Mattermost server API client.
	client *pluginapi.Client

	// commandClient is the client used to register and execute slash commands.
	commandClient command.Command

	// kitchenClient probes and downloads emoji assets.
	kitchenClient *kitchen.Client

	// botUserID is the user that posts passive mix replies.
	botUserID string

	logger Logger

	// probeLogger is logger, mirrored into transactionLog when one is configured.
	probeLogger Logger

	// transactionLog records every catalog probe when MM_EMOJIMIX_LOG_FILESPEC is set.
	transactionLog *logr.Logr

	initOnce sync.Once

	// configurationLock synchronizes access to the configuration.
	configurationLock sync.RWMutex

	// configuration is the active plugin configuration. Consult getConfiguration and
	// setConfiguration for usage.
	configuration *configuration
}

// initClients creates the logger and the asset client. Mattermost calls
// OnConfigurationChange before OnActivate, so both hooks may get here first.
func (p *Plugin) initClients() {
	p.initOnce.Do(func() {
		if p.logger == nil {
			p.logger = NewPluginAPILogger(p.API)
		}

		p.probeLogger = p.logger
		transactionLog, err := CreateTransactionLogger()
		switch {
		case err != nil:
			p.logger.LogWarn("Failed to create transaction logger", "error", err.Error())
		case transactionLog != nil:
			p.transactionLog = transactionLog
			p.probeLogger = NewTeeLogger(p.logger, transactionLog.NewLogger())
		}

		if p.kitchenClient == nil {
			p.kitchenClient = kitchen.NewClient(p.probeLogger)
		}
	})
}

// OnActivate is invoked when the plugin is activated. If an error is returned, the plugin will be deactivated.
func (p *Plugin) OnActivate() error {
	p.client = pluginapi.NewClient(p.API, p.Driver)
	p.initClients()

	botUserID, err := p.client.Bot.EnsureBot(&model.Bot{
		Username:    botUsername,
		DisplayName: botDisplayName,
		Description: botDescription,
	})
	if err != nil {
		return errors.Wrap(err, "failed to ensure bot user")
	}
	p.botUserID = botUserID

	if p.getConfiguration().mixer == nil {
		if err := p.OnConfigurationChange(); err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
	}

	p.commandClient = command.NewCommandHandler(p)

	p.logger.LogInfo("Emoji Mix plugin activated", "bot_user_id", botUserID)
	return nil
}

// OnDeactivate is invoked when the plugin is deactivated.
func (p *Plugin) OnDeactivate() error {
	if p.logger != nil {
		p.logger.LogInfo("Emoji Mix plugin deactivated")
	}
	if p.transactionLog != nil {
		if err := p.transactionLog.Shutdown(); err != nil {
			p.API.LogError("Failed to shut down transaction logger", "err", err)
		}
	}
	return nil
}

// ExecuteCommand executes the commands that were registered in the NewCommandHandler function.
func (p *Plugin) ExecuteCommand(_ *plugin.Context, args *model.CommandArgs) (*model.CommandResponse, *model.AppError) {
	response, err := p.commandClient.Handle(args)
	if err != nil {
		return nil, model.NewAppError("ExecuteCommand", "plugin.command.execute_command.app_error", nil, err.Error(), http.StatusInternalServerError)
	}
	return response, nil
}

// PluginAccessor interface implementation for command handlers

// GetMixer returns the mixer of the active configuration, or nil before one is loaded
func (p *Plugin) GetMixer() command.Mixer {
	m := p.getConfiguration().mixer
	if m == nil {
		return nil
	}
	return m
}

// GetPluginAPIClient returns the pluginapi client
func (p *Plugin) GetPluginAPIClient() *pluginapi.Client {
	return p.client
}
