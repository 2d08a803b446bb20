package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/welllog/model"
	"gopkg.in/yaml.v3"
)

// snapshotDoc is the on-disk snapshot layout. JSON documents are accepted
// as well since YAML is a superset.
//
//	well:
//	  id: "15/9-F-11"
//	  name: "F-11"
//	  range: {start: 2600, stop: 3400, unit: m}
//	depths: [2600, 2600.5, ...]
//	curves:
//	  - name: GR
//	    unit: gAPI
//	    values: [45.2, null, 51.0, ...]
//	  - name: RDEP
//	    unit: ohm.m
//	    scale: log
//	markers:
//	  - {id: m1, name: "Hugin Fm.", depth: 2710, horizon: h1}
//	horizons:
//	  - {id: h1, name: Hugin, color: "#1f77b4"}
type snapshotDoc struct {
	Well struct {
		ID    string `yaml:"id"`
		Name  string `yaml:"name"`
		Range *struct {
			Start *float64 `yaml:"start"`
			Stop  *float64 `yaml:"stop"`
			Unit  string   `yaml:"unit"`
		} `yaml:"range"`
	} `yaml:"well"`
	Depths  []*float64      `yaml:"depths"`
	Curves  []snapshotCurve `yaml:"curves"`
	Markers []struct {
		ID      string  `yaml:"id"`
		Name    string  `yaml:"name"`
		Depth   float64 `yaml:"depth"`
		Color   string  `yaml:"color"`
		Horizon string  `yaml:"horizon"`
		Well    string  `yaml:"well"`
	} `yaml:"markers"`
	Horizons []struct {
		ID    string `yaml:"id"`
		Name  string `yaml:"name"`
		Color string `yaml:"color"`
	} `yaml:"horizons"`
}

type snapshotCurve struct {
	Name   string     `yaml:"name"`
	Unit   string     `yaml:"unit"`
	Scale  string     `yaml:"scale"`
	Fill   string     `yaml:"fill"`
	Color  string     `yaml:"color"`
	Depths []*float64 `yaml:"depths"`
	Values []*float64 `yaml:"values"`
}

// ParseSnapshot decodes a snapshot document. Null samples become NaN.
// Curves without their own depths share the document's depth array.
// Curve styles not given explicitly are inferred from name and unit.
func ParseSnapshot(data []byte) (*model.Well, error) {
	var doc snapshotDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSnapshot)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if strings.TrimSpace(doc.Well.ID) == "" {
		return nil, fmt.Errorf("%w: well.id is required", ErrInvalidSnapshot)
	}

	w := &model.Well{
		ID:    doc.Well.ID,
		Name:  doc.Well.Name,
		Logs:  model.NewWellLogs(),
		Range: model.DepthRange{Start: model.Null, Stop: model.Null},
	}
	if r := doc.Well.Range; r != nil {
		w.Range = model.DepthRange{Start: deref(r.Start), Stop: deref(r.Stop), Unit: r.Unit}
	}

	shared := samples(doc.Depths)
	for i, sc := range doc.Curves {
		if strings.TrimSpace(sc.Name) == "" {
			return nil, fmt.Errorf("%w: curves[%d]: name is required", ErrInvalidSnapshot, i)
		}
		st, err := curveStyle(sc)
		if err != nil {
			return nil, fmt.Errorf("%w: curves[%d] %s: %w", ErrInvalidSnapshot, i, sc.Name, err)
		}
		depths := shared
		if len(sc.Depths) > 0 {
			depths = samples(sc.Depths)
		}
		w.Logs.Add(&model.Curve{
			Name:   sc.Name,
			Unit:   sc.Unit,
			Depths: depths,
			Values: samples(sc.Values),
			Style:  st,
		})
	}
	for _, m := range doc.Markers {
		w.Markers = append(w.Markers, model.Marker{
			ID:        m.ID,
			Name:      m.Name,
			Depth:     m.Depth,
			Color:     m.Color,
			HorizonID: m.Horizon,
			WellID:    m.Well,
		})
	}
	for _, h := range doc.Horizons {
		w.Horizons = append(w.Horizons, model.Horizon{ID: h.ID, Name: h.Name, Color: h.Color})
	}
	return w, nil
}

func curveStyle(sc snapshotCurve) (model.Style, error) {
	st := model.InferStyle(sc.Name, sc.Unit)
	switch strings.ToLower(sc.Scale) {
	case "":
	case "linear":
		st.Scale = model.ScaleLinear
	case "log":
		st.Scale = model.ScaleLog
	default:
		return st, fmt.Errorf("unknown scale %q", sc.Scale)
	}
	switch strings.ToLower(sc.Fill) {
	case "":
	case "none":
		st.Fill = model.FillNone
	case "left":
		st.Fill = model.FillLeft
	case "right":
		st.Fill = model.FillRight
	default:
		return st, fmt.Errorf("unknown fill %q", sc.Fill)
	}
	st.Color = sc.Color
	return st, nil
}

func samples(in []*float64) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = deref(v)
	}
	return out
}

func deref(v *float64) float64 {
	if v == nil {
		return model.Null
	}
	return *v
}

// ReadSnapshot reads and parses a snapshot file.
func ReadSnapshot(path string) (*model.Well, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read snapshot: %w", err)
	}
	w, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// SnapshotFile is a Loader backed by one snapshot file.
type SnapshotFile struct {
	Path string
}

// Load reads the file. An empty wellID accepts whatever well the file holds.
func (f SnapshotFile) Load(ctx context.Context, wellID string) (*model.Well, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, err := ReadSnapshot(f.Path)
	if err != nil {
		return nil, err
	}
	if wellID != "" && w.ID != wellID {
		return nil, fmt.Errorf("%w: %q not in %s", ErrWellNotFound, wellID, f.Path)
	}
	return w, nil
}
