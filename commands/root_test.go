package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "sync-all", "test-connection", "issue-token"}, names)
}

func TestIssueTokenCommand_Flags(t *testing.T) {
	cmd := NewIssueTokenCommand()

	assert.NotNil(t, cmd.Flags().Lookup("ttl"))
	assert.NotNil(t, cmd.Flags().Lookup("events-only"))
	assert.Equal(t, "admin", cmd.Flags().Lookup("subject").DefValue)
}
