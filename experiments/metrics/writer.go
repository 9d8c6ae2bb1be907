package metrics

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type GameRecord struct {
	ID int
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Writer writes experiment records as CSV tables, one destination per table.
type Writer struct {
	agents io.Writer
	games  io.Writer
	moves  io.Writer
}

func NewWriter(agents, games, moves io.Writer) *Writer {
	return &Writer{
		agents: agents,
		games:  games,
		moves:  moves,
	}
}

// WriteAll writes every table, reporting all failures rather than the first one.
func (w *Writer) WriteAll(configs []AgentConfig, games []GameRecord, moves []MoveRecord) error {
	var errs error
	if err := w.WriteAgentConfigs(configs); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := w.WriteGameRecords(games); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := w.WriteMoveRecords(moves); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "duration", "time_limit", "samples", "playouts", "cutoff", "policy", "goroutines"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			string(config.Kind),
			config.Duration.String(),
			config.TimeLimit.String(),
			strconv.Itoa(config.Samples),
			strconv.Itoa(config.Playouts),
			strconv.Itoa(config.Cutoff),
			config.Policy,
			strconv.Itoa(config.Goroutines),
		})
	}
	return errors.Wrap(writeTable(w.agents, header, rows), "failed to write agent configs")
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "black", "white", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Black),
			strconv.Itoa(record.White),
			record.Winner.String(),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return errors.Wrap(writeTable(w.games, header, rows), "failed to write game records")
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "duration", "episodes", "playouts", "full_playouts", "nodes", "outcome"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Move,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Playouts),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.Nodes),
			record.Outcome,
		})
	}
	return errors.Wrap(writeTable(w.moves, header, rows), "failed to write move records")
}

func writeTable(out io.Writer, header []string, rows [][]string) error {
	if out == nil {
		return nil
	}
	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}
