package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Checkpoint is the evaluation of a learner trained for a number of episodes.
type Checkpoint struct {
	Episodes  int
	TableSize int
	Games     int
	Draws     int
	Wins      int // Learner wins
	Losses    int // Learner losses
	Duration  time.Duration
}

func (c Checkpoint) DrawRate() float64 {
	if c.Games == 0 {
		return 0
	}
	return float64(c.Draws) / float64(c.Games)
}

type GameRecord struct {
	ID int
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the experiment files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// Path returns the location of a file inside the experiment directory.
func (w *Writer) Path(file string) string {
	return filepath.Join(w.baseDir, file)
}

func (w *Writer) WriteCheckpoints(checkpoints []Checkpoint) error {
	header := []string{"episodes", "table_size", "games", "draws", "wins", "losses", "draw_rate", "duration"}
	rows := make([][]string, 0, len(checkpoints))
	for _, c := range checkpoints {
		rows = append(rows, []string{
			strconv.Itoa(c.Episodes),
			strconv.Itoa(c.TableSize),
			strconv.Itoa(c.Games),
			strconv.Itoa(c.Draws),
			strconv.Itoa(c.Wins),
			strconv.Itoa(c.Losses),
			strconv.FormatFloat(c.DrawRate(), 'f', 4, 64),
			c.Duration.String(),
		})
	}
	return w.write("checkpoints.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Agent1,
			record.Agent2,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "agent", "action", "duration", "nodes", "cache_hit"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Agent,
			strconv.Itoa(record.Action),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.FormatBool(record.CacheHit),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := w.Path(file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}

	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", file, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", file, err)
	}
	return nil
}
