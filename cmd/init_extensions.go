/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but aren't initialised until the first
// command that needs the glossary runs. The service is opened once and
// shared with every extension through the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/glossd/extension"
	"github.com/jpl-au/glossd/internal/glossary"
	"github.com/jpl-au/glossd/internal/log"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built from the bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip store
// initialisation.
//
// Bootstrap commands (init, guide, config, llm) must work before "glossd
// init" has run. Extensions add their own through extension.Storeless;
// serve and web, for example, open the glossary themselves.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
		"llm":    true,
		"help":   true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *glossary.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the glossary and injects it into extensions. It
// runs at most once per process; repo.ErrNotInitialised surfaces unchanged
// so the user is told to run "glossd init".
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := glossary.New(Options())
		if err != nil {
			initErr = err
			return
		}
		extService = svc

		log.SetProject(svc.Location())

		extContext = extension.NewContext(svc, svc.DB(), svc.Config())

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
