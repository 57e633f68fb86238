package scenario

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// Row is the engine output after one step or pulse call.
type Row struct {
	Sample  int // samples processed so far
	Call    string
	Clock   float32
	CV      float32
	CV2     float32
	Gate    float32
	Pointer int
	Notes   int
}

// Trace is everything a scenario played.
type Trace struct {
	Name       string
	SampleRate float64
	Samples    int
	Rows       []Row
}

// CV returns the CV column of every row.
func (t *Trace) CV() []float32 {
	cv := make([]float32, len(t.Rows))
	for i, r := range t.Rows {
		cv[i] = r.CV
	}
	return cv
}

// Gates returns the gate column of every row.
func (t *Trace) Gates() []float32 {
	g := make([]float32, len(t.Rows))
	for i, r := range t.Rows {
		g[i] = r.Gate
	}
	return g
}

// CSVHeader is the first record written by WriteCSV.
var CSVHeader = []string{"scenario", "sample", "call", "clock", "cv", "cv2", "gate", "pointer", "notes"}

// WriteCSV writes one record per row, with a header when header is set.
func (t *Trace) WriteCSV(w io.Writer, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(CSVHeader); err != nil {
			return err
		}
	}
	for _, r := range t.Rows {
		rec := []string{
			t.Name,
			strconv.Itoa(r.Sample),
			r.Call,
			formatVolts(r.Clock),
			formatVolts(r.CV),
			formatVolts(r.CV2),
			formatVolts(r.Gate),
			strconv.Itoa(r.Pointer),
			strconv.Itoa(r.Notes),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes an aligned table for terminals.
func (t *Trace) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%.0f Hz\t%d samples\t\n", t.Name, t.SampleRate, t.Samples)
	fmt.Fprintln(tw, "sample\tcall\tclock\tcv\tcv2\tgate\tptr\tnotes\t")
	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t\n",
			r.Sample, r.Call, formatVolts(r.Clock), formatVolts(r.CV),
			formatVolts(r.CV2), formatVolts(r.Gate), r.Pointer, r.Notes)
	}
	return tw.Flush()
}

func formatVolts(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', 6, 32)
}
