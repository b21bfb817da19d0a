package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"pegsolitaire/communication"
	"pegsolitaire/engine"
	"pegsolitaire/game"
)

type GameRecord struct {
	ID int
	GameMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped subfolder of root named after the experiment.
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

// Dir returns the directory the writer stores files in.
func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"id", "seed", "moves", "final_pieces", "game_over", "start_time", "end_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.Moves),
			strconv.Itoa(record.FinalPieces),
			strconv.FormatBool(record.GameOver),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// TracePath returns the path WriteTrace uses for seed.
func (w *Writer) TracePath(seed uint64) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("trace_%d.csv", seed))
}

func (w *Writer) WriteTrace(seed uint64, trace engine.Trace) error {
	f, err := os.Create(w.TracePath(seed))
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer f.Close()
	return EncodeTrace(f, trace)
}

var traceHeader = []string{"cycle", "x", "y", "dir", "input", "num_pieces", "game_over", "status", "hold"}

// EncodeTrace writes trace as CSV, one row per cycle.
func EncodeTrace(out io.Writer, trace engine.Trace) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(traceHeader); err != nil {
		return fmt.Errorf("failed to write trace header: %w", err)
	}
	for _, step := range trace {
		row := []string{
			strconv.Itoa(step.Cycle),
			strconv.Itoa(step.Move.X),
			strconv.Itoa(step.Move.Y),
			step.Move.Dir.String(),
			strconv.Itoa(int(step.Input)),
			strconv.Itoa(step.Status.NumPieces),
			strconv.FormatBool(step.Status.GameOver),
			strconv.Itoa(int(step.Output)),
			strconv.FormatBool(step.Hold),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write trace row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadTrace loads a trace written by WriteTrace.
func ReadTrace(path string) (engine.Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer f.Close()
	return DecodeTrace(f)
}

// DecodeTrace parses a CSV trace. The packed input and status columns must
// agree with the decoded columns next to them.
func DecodeTrace(in io.Reader) (engine.Trace, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = len(traceHeader)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("trace is empty")
	}
	if !slices.Equal(rows[0], traceHeader) {
		return nil, fmt.Errorf("trace header %q, want %q", strings.Join(rows[0], ","), strings.Join(traceHeader, ","))
	}

	trace := make(engine.Trace, 0, len(rows)-1)
	for i, row := range rows[1:] {
		step, err := parseStep(row)
		if err != nil {
			return nil, fmt.Errorf("trace row %d: %w", i+1, err)
		}
		trace = append(trace, step)
	}
	return trace, nil
}

func parseStep(row []string) (engine.Step, error) {
	ints := make([]int, 0, 6)
	for _, col := range []int{0, 1, 2, 4, 5, 7} {
		n, err := strconv.Atoi(row[col])
		if err != nil {
			return engine.Step{}, fmt.Errorf("column %s: %w", traceHeader[col], err)
		}
		ints = append(ints, n)
	}
	dir, err := game.ParseDirection(row[3])
	if err != nil {
		return engine.Step{}, err
	}
	over, err := strconv.ParseBool(row[6])
	if err != nil {
		return engine.Step{}, fmt.Errorf("column game_over: %w", err)
	}
	hold, err := strconv.ParseBool(row[8])
	if err != nil {
		return engine.Step{}, fmt.Errorf("column hold: %w", err)
	}
	if ints[3] < 0 || ints[3] > 0xFF || ints[5] < 0 || ints[5] > 0xFF {
		return engine.Step{}, fmt.Errorf("packed value out of range")
	}

	step := engine.Step{
		Cycle:  ints[0],
		Move:   game.NewMove(ints[1], ints[2], dir),
		Input:  uint8(ints[3]),
		Status: communication.Status{NumPieces: ints[4], GameOver: over},
		Output: uint8(ints[5]),
		Hold:   hold,
	}
	if input, err := communication.PackMove(step.Move); err != nil || input != step.Input {
		return engine.Step{}, fmt.Errorf("input %d does not encode move %s", step.Input, step.Move)
	}
	if communication.UnpackStatus(step.Output) != step.Status {
		return engine.Step{}, fmt.Errorf("status %d does not encode %s", step.Output, step.Status)
	}
	return step, nil
}
