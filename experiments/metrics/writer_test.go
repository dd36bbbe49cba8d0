package metrics

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	writer, err := NewWriter(root, "sweep")
	require.NoError(t, err)
	require.DirExists(t, writer.Dir())

	t.Run("writes checkpoints", func(t *testing.T) {
		err := writer.WriteCheckpoints([]Checkpoint{
			{Episodes: 0, Games: 10, Draws: 2, Losses: 8},
			{Episodes: 1500, TableSize: 4000, Games: 10, Draws: 10, Duration: time.Second},
		})
		require.NoError(t, err)

		rows := readCSV(t, writer.Path("checkpoints.csv"))
		require.Len(t, rows, 3, "Header plus one row per checkpoint")
		require.Equal(t, "draw_rate", rows[0][6])
		require.Equal(t, []string{"0", "0", "10", "2", "0", "8", "0.2000", "0s"}, rows[1])
		require.Equal(t, "1.0000", rows[2][6])
	})

	t.Run("writes game and move records", func(t *testing.T) {
		err := writer.WriteGameRecords([]GameRecord{
			{ID: 1, GameMetric: GameMetric{Agent1: "search", Agent2: "random", Winner: "X", TotalMoves: 7}},
		})
		require.NoError(t, err)
		err = writer.WriteMoveRecords([]MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: "X", Agent: "search", Action: 0,
				SearchMetric: SearchMetric{Nodes: 59704}}},
		})
		require.NoError(t, err)

		games := readCSV(t, writer.Path("game_records.csv"))
		require.Equal(t, "search", games[1][1])
		require.Equal(t, "7", games[1][7])

		moves := readCSV(t, writer.Path("move_records.csv"))
		require.Equal(t, "59704", moves[1][6])
		require.Equal(t, "false", moves[1][7])
	})
}

func TestCheckpointDrawRate(t *testing.T) {
	require.Equal(t, 0.0, Checkpoint{}.DrawRate(), "No games means no draw rate")
	require.InDelta(t, 0.25, Checkpoint{Games: 4, Draws: 1}.DrawRate(), 1e-9)
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start()
	c.AddNode()
	c.AddNode()
	got := c.Complete()
	require.Equal(t, 2, got.Nodes)
	require.False(t, got.CacheHit)

	c.Start()
	c.AddCacheHit()
	got = c.Complete()
	require.Equal(t, 0, got.Nodes, "Start should reset the counters")
	require.True(t, got.CacheHit)

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete())
}
