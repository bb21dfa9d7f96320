package report

import (
	"encoding/json"
	"io"
)

func WriteCallGraphJSON(w io.Writer, r CallGraphReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func WriteConstPropJSON(w io.Writer, r ConstPropReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func WritePointsToJSON(w io.Writer, r PointsToReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func WriteTaintJSON(w io.Writer, r TaintReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func WriteDeadCodeJSON(w io.Writer, r DeadCodeReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
