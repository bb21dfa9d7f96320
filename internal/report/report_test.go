package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/1homsi/goflow/internal/report"
)

func TestWriteDeadCodeJSONRoundTrips(t *testing.T) {
	r := report.DeadCodeReport{
		Method: "Main.main",
		Findings: []report.DeadCodeEntry{
			{Index: 3, Reason: "dead-assignment", Stmt: "y = 2"},
		},
	}
	var buf bytes.Buffer
	if err := report.WriteDeadCodeJSON(&buf, r); err != nil {
		t.Fatalf("WriteDeadCodeJSON() error = %v", err)
	}
	var decoded report.DeadCodeReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Method != "Main.main" || len(decoded.Findings) != 1 {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestWriteTaintText(t *testing.T) {
	r := report.TaintReport{Flows: []report.TaintFlowEntry{{Source: "Lib.source", Sink: "Lib.sink", Index: 0}}}
	var buf bytes.Buffer
	report.WriteTaintText(&buf, r)
	if !strings.Contains(buf.String(), "Lib.source") || !strings.Contains(buf.String(), "Lib.sink") {
		t.Fatalf("output missing source/sink: %s", buf.String())
	}
}

func TestWriteTaintTextNoFlows(t *testing.T) {
	var buf bytes.Buffer
	report.WriteTaintText(&buf, report.TaintReport{})
	if !strings.Contains(buf.String(), "no taint flows") {
		t.Fatalf("expected no-flows message, got: %s", buf.String())
	}
}
