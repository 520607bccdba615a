// See https://developers.mattermost.com/extend/plugins/server/reference/
package main

import (
	"reflect"
	"time"

	"github.com/mattermost/mattermost-plugin-emojimix/server/mixer"
	"github.com/pkg/errors"
)

// configuration captures the plugin's external configuration as exposed in the Mattermost server
// configuration, as well as values computed from the configuration. Any public fields will be
// deserialized from the Mattermost server configuration in OnConfigurationChange.
//
// Every public field is optional and overrides one built-in default. The computed mixer is
// immutable; a configuration change builds a new one.
type configuration struct {
	// CatalogDates is a comma separated list of Emoji Kitchen snapshots, in probe order.
	CatalogDates          string `json:"catalog_dates"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	PassiveMaxLength      int    `json:"passive_max_length"`
	DisablePassiveTrigger bool   `json:"disable_passive_trigger"`

	mixer *mixer.Mixer
}

// Clone shallow copies the configuration. The mixer is shared since it is never modified.
func (c *configuration) Clone() *configuration {
	var clone = *c
	return &clone
}

// mixerConfig applies the overrides to the built-in mixer configuration.
func (c *configuration) mixerConfig() mixer.Config {
	config := mixer.DefaultConfig()

	if dates := mixer.ParseCatalogDates(c.CatalogDates); len(dates) > 0 {
		config.CatalogDates = dates
	}
	if c.RequestTimeoutSeconds != 0 {
		config.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	}
	if c.PassiveMaxLength != 0 {
		config.PassiveMaxLength = c.PassiveMaxLength
	}

	return config
}

// getConfiguration retrieves the active configuration under lock, making it safe to use
// concurrently. The active configuration may change underneath the client of this method, but
// the struct returned by this API call is considered immutable.
func (p *Plugin) getConfiguration() *configuration {
	p.configurationLock.RLock()
	defer p.configurationLock.RUnlock()

	if p.configuration == nil {
		return &configuration{}
	}

	return p.configuration
}

// setConfiguration replaces the active configuration under lock.
//
// Do not call setConfiguration while holding the configurationLock, as sync.Mutex is not
// reentrant. In particular, avoid using the plugin API entirely, as this may in turn trigger a
// hook back into the plugin. If that hook attempts to acquire this lock, a deadlock may occur.
//
// This method panics if setConfiguration is called with the existing configuration. This almost
// certainly means that the configuration was modified without being cloned and may result in
// an unsafe access.
func (p *Plugin) setConfiguration(configuration *configuration) {
	p.configurationLock.Lock()
	defer p.configurationLock.Unlock()

	if configuration != nil && p.configuration == configuration {
		// Ignore assignment if the configuration struct is empty. Go will optimize the
		// allocation for same to point at the same memory address, breaking the check
		// above.
		if reflect.ValueOf(*configuration).NumField() == 0 {
			return
		}

		panic("setConfiguration called with the existing configuration")
	}

	p.configuration = configuration
}

// OnConfigurationChange is invoked when configuration changes may have been made.
// An invalid configuration is rejected and the previous one stays active.
func (p *Plugin) OnConfigurationChange() error {
	var configuration = new(configuration)

	// Load the public configuration fields from the Mattermost server configuration.
	if err := p.API.LoadPluginConfiguration(configuration); err != nil {
		return errors.Wrap(err, "failed to load plugin configuration")
	}

	p.initClients()

	m, err := mixer.New(configuration.mixerConfig(), p.kitchenClient, p.probeLogger)
	if err != nil {
		return errors.Wrap(err, "invalid plugin configuration")
	}
	configuration.mixer = m

	p.setConfiguration(configuration)

	return nil
}
