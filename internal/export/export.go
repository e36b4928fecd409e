// Package export writes trajectories for external renderers: CSV rows, a
// JSON document and a static SVG plot.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/orbsim/internal/dynamo"
)

// Meta describes the run a trajectory came from.
type Meta struct {
	Name       string             `json:"name"`
	Integrator string             `json:"integrator"`
	G          float64            `json:"g"`
	Bodies     []string           `json:"bodies"`
	Masses     []float64          `json:"masses"`
	Colors     []string           `json:"colors,omitempty"`
	Extent     float64            `json:"extent,omitempty"` // half-width of the rendered view; 0 fits the data
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

type document struct {
	Meta
	Dt         float64        `json:"dt"`
	Steps      int            `json:"steps"`
	Times      []float64      `json:"times"`
	Positions  [][][2]float64 `json:"positions"`
	Velocities [][][2]float64 `json:"velocities"`
}

var csvHeader = []string{"step", "time", "body", "name", "x", "y", "vx", "vy"}

// WriteCSV writes one row per body per step.
func WriteCSV(w io.Writer, traj *dynamo.Trajectory, names []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for step := 0; step < traj.Len(); step++ {
		x := traj.At(step)
		t := strconv.FormatFloat(traj.Time(step), 'g', -1, 64)
		for i := range x.Positions {
			row[0] = strconv.Itoa(step)
			row[1] = t
			row[2] = strconv.Itoa(i)
			row[3] = bodyName(names, i)
			row[4] = formatFloat(x.Positions[i].X)
			row[5] = formatFloat(x.Positions[i].Y)
			row[6] = formatFloat(x.Velocities[i].X)
			row[7] = formatFloat(x.Velocities[i].Y)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV rebuilds a trajectory and the body names from WriteCSV output.
func ReadCSV(r io.Reader) (*dynamo.Trajectory, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("no rows: %w", dynamo.ErrDimensionMismatch)
	}

	var (
		names  []string
		states []dynamo.State
		times  []float64
	)
	for n, rec := range records[1:] {
		line := n + 2
		step, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		body, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		var vals [5]float64
		for k, field := range []string{rec[1], rec[4], rec[5], rec[6], rec[7]} {
			if vals[k], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line, err)
			}
		}

		if step == len(states) {
			states = append(states, dynamo.State{})
			times = append(times, vals[0])
		}
		if step != len(states)-1 || body != len(states[step].Positions) {
			return nil, nil, fmt.Errorf("line %d: step %d body %d out of order: %w", line, step, body, dynamo.ErrDimensionMismatch)
		}
		if step == 0 {
			names = append(names, rec[3])
		}
		states[step].Positions = append(states[step].Positions, dynamo.Vec{X: vals[1], Y: vals[2]})
		states[step].Velocities = append(states[step].Velocities, dynamo.Vec{X: vals[3], Y: vals[4]})
	}

	for step, x := range states {
		if x.Len() != len(names) {
			return nil, nil, fmt.Errorf("step %d has %d bodies, want %d: %w", step, x.Len(), len(names), dynamo.ErrDimensionMismatch)
		}
	}

	dt := 0.0
	if len(times) > 1 {
		dt = times[1] - times[0]
	}
	traj := dynamo.NewTrajectory(states[0], dt, len(states)-1)
	for _, x := range states[1:] {
		traj.Append(x)
	}
	return traj, names, nil
}

func WriteJSON(w io.Writer, meta Meta, traj *dynamo.Trajectory) error {
	doc := document{
		Meta:       meta,
		Dt:         traj.Dt,
		Steps:      traj.Len() - 1,
		Times:      make([]float64, traj.Len()),
		Positions:  make([][][2]float64, traj.Len()),
		Velocities: make([][][2]float64, traj.Len()),
	}
	for step := 0; step < traj.Len(); step++ {
		doc.Times[step] = traj.Time(step)
		doc.Positions[step] = pairs(traj.Positions[step])
		doc.Velocities[step] = pairs(traj.Velocities[step])
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ToFile picks the writer from the file extension: .csv, .json or .svg.
func ToFile(path string, meta Meta, traj *dynamo.Trajectory) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".json", ".svg":
	default:
		return fmt.Errorf("unknown export format %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext {
	case ".csv":
		err = WriteCSV(f, traj, meta.Bodies)
	case ".json":
		err = WriteJSON(f, meta, traj)
	case ".svg":
		err = WriteSVG(f, traj, SVGOptions{Names: meta.Bodies, Colors: meta.Colors, Extent: meta.Extent})
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func pairs(v []dynamo.Vec) [][2]float64 {
	out := make([][2]float64, len(v))
	for i, p := range v {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

func bodyName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("body%d", i)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
