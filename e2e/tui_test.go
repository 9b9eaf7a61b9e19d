//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startSearchScreen(t *testing.T) (*TUITestFramework, *weatherServer) {
	t.Helper()
	srv := newWeatherServer(t)
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	require.NoError(t, tf.StartApp("--base-url", srv.URL), "Failed to start app")
	require.True(t, tf.Ready(), "Should render the search screen")
	return tf, srv
}

func TestInitialScreenShowsNoResults(t *testing.T) {
	t.Parallel()
	tf, _ := startSearchScreen(t)

	require.True(t, tf.SeePlain("No results"), "Should start in the no-results state")
}

func TestSearchShowsMatches(t *testing.T) {
	t.Parallel()
	tf, srv := startSearchScreen(t)

	require.NoError(t, tf.Search("London"))

	require.True(t, tf.SeePlain("London, GB"), "Should list the first match")
	require.True(t, tf.SeePlain("London, CA"), "Should list the second match")
	require.True(t, tf.SeePlain(`2 result(s) for "London"`), "Should show the result count")
	require.EqualValues(t, 1, srv.requests.Load())
}

func TestSearchWithoutMatches(t *testing.T) {
	t.Parallel()
	tf, _ := startSearchScreen(t)

	require.NoError(t, tf.Search("London"))
	require.True(t, tf.SeePlain("London, GB"))

	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyCtrlL))
	require.NoError(t, tf.Search("Atlantis"))
	require.True(t, tf.SeePlainSince(mark, "No results"), "Should replace the matches with the no-results row")
}

func TestLoadingRowWhileLookupRuns(t *testing.T) {
	t.Parallel()
	tf, _ := startSearchScreen(t)

	require.NoError(t, tf.Search("Slowtown"))

	require.True(t, tf.SeePlain("Searching"), "Should show the loading row")
	require.True(t, tf.OutputContainsPlain("London, GB", 5*time.Second), "Should show matches once the lookup settles")
}

func TestRejectedKeyShowsStatus(t *testing.T) {
	t.Parallel()
	srv := newWeatherServer(t)
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)
	tf.apiKey = "wrong"

	require.NoError(t, tf.StartApp("--base-url", srv.URL))
	require.True(t, tf.Ready())

	require.NoError(t, tf.Search("London"))
	require.True(t, tf.WaitForStatusMessage("rejected the API key", 3*time.Second), "Should explain the failure in the status line")
	require.True(t, tf.SeePlain("No results"))
}

func TestDetailsPager(t *testing.T) {
	t.Parallel()
	tf, _ := startSearchScreen(t)

	require.NoError(t, tf.Search("London"))
	require.True(t, tf.SeePlain("London, CA"))

	require.NoError(t, tf.Tab())
	require.NoError(t, tf.Down())
	require.NoError(t, tf.Enter())

	require.True(t, tf.SeePlain("1020 hPa"), "Should show the selected city's details in the pager")

	// Quit pager and ensure TUI again
	mark := tf.Mark()
	require.NoError(t, tf.Quit())
	require.True(t, tf.SeePlainSince(mark, "London, GB"), "Should return to main TUI after closing pager")
}

func TestClearReturnsToEmpty(t *testing.T) {
	t.Parallel()
	tf, _ := startSearchScreen(t)

	require.NoError(t, tf.Search("London"))
	require.True(t, tf.SeePlain("London, GB"))

	require.NoError(t, tf.SendKeys(KeyCtrlL))
	require.True(t, tf.SeePlain("Type a city name and press Enter"))
}

func TestEscFromListReturnsToSearch(t *testing.T) {
	t.Parallel()
	tf, _ := startSearchScreen(t)

	require.NoError(t, tf.Search("London"))
	require.True(t, tf.SeePlain("London, GB"))
	require.NoError(t, tf.Tab())

	require.NoError(t, tf.Esc())
	// A lone escape is only recognised once no further bytes follow it
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, tf.SendKeys(KeyCtrlL))
	require.True(t, tf.SeePlain("Type a city name and press Enter"))

	mark := tf.Mark()
	require.NoError(t, tf.Type("Nowhere"))
	require.NoError(t, tf.Enter())
	require.True(t, tf.SeePlainSince(mark, "No results"), "Typing after esc should go to the search bar")
}
