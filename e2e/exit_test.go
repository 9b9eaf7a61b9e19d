//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitForExit(t *testing.T, tf *TUITestFramework, send func() error) {
	t.Helper()

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	require.NoError(t, send())

	select {
	case exitErr := <-done:
		require.NoError(t, exitErr, "Process should exit cleanly")
	case <-time.After(2 * time.Second):
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		t.Fatal("Application did not exit")
	}
}

func TestEscQuitsFromSearchBar(t *testing.T) {
	t.Parallel()
	tf, _ := startSearchScreen(t)

	waitForExit(t, tf, tf.Esc)
}

func TestQuitFromResultList(t *testing.T) {
	t.Parallel()
	tf, _ := startSearchScreen(t)

	require.NoError(t, tf.Search("London"))
	require.True(t, tf.SeePlain("London, GB"))
	require.NoError(t, tf.Tab())

	waitForExit(t, tf, tf.Quit)
}

func TestCtrlCDuringLookup(t *testing.T) {
	t.Parallel()
	tf, _ := startSearchScreen(t)

	require.NoError(t, tf.Search("Slowtown"))
	require.True(t, tf.SeePlain("Searching"))

	waitForExit(t, tf, tf.SendCtrlC)
}
