package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arnavshah/troop-swap-api-go/pkg/config"
	"github.com/arnavshah/troop-swap-api-go/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerateCommand(t *testing.T) {
	roster := writeFile(t, "roster.csv", "Username,Status,Marches_Available,Inf_Cav\na,Online,1,10\nb,Offline,1,20\n")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"generate", "--roster", roster, "--seed", "11", "--summary"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "From,Status,Send To,Target Status\na,Online,b,Offline\nb,Offline,a,Online\n", out.String())
	assert.Contains(t, errOut.String(), "matched=2 unmatched=0")
}

func TestGenerateCommand_OutFile(t *testing.T) {
	roster := writeFile(t, "roster.csv", "Username,Status,Marches_Available\na,Online,1\nb,Online,0\n")
	outPath := filepath.Join(t.TempDir(), "orders.csv")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"generate", "-r", roster, "-o", outPath})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "From,Status,Send To,Target Status\na,Online,b,Online\n", string(data))
}

func TestGenerateCommand_Rejects(t *testing.T) {
	single := writeFile(t, "single.csv", "Username,Status,Marches_Available\na,Online,4\n")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate", "--roster", single})
	assert.Error(t, cmd.Execute())

	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate"})
	assert.Error(t, cmd.Execute(), "roster flag is required")
}

func TestLadderCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"ladder"})
	require.NoError(t, cmd.Execute())

	cfg, err := config.ParseLadder(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, generator.DefaultConfig(), cfg)
}
