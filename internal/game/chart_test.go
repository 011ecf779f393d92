package game

import (
	"errors"
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

func TestLoadSortsStably(t *testing.T) {
	raw := RawChart{
		Title: "sort",
		Notes: []RawNote{
			{TimeMs: f(3000), Lane: "UL", Type: "PULSE"},
			{TimeMs: f(1000), Lane: "DR", Type: "TWIN"},
			{TimeMs: f(1000), Lane: "DL", Type: "TWIN"},
			{TimeMs: f(500), Lane: "UR", Type: "HOLD", DurationMs: f(250)},
			{TimeMs: f(1000), Lane: "UL", Type: "TAP"},
		},
	}
	chart, err := Load(raw)
	if nil != err {
		t.Fatal(err)
	}
	expected := []Head{
		{Time: 500 * time.Millisecond, Lane: UpRight},
		{Time: time.Second, Lane: DownRight},
		{Time: time.Second, Lane: DownLeft},
		{Time: time.Second, Lane: UpLeft},
		{Time: 3 * time.Second, Lane: UpLeft},
	}
	for i, n := range chart.Notes {
		if n.Start() != expected[i] {
			t.Errorf("note %v is %+v, expected %+v", i, n.Start(), expected[i])
		}
	}
	if !chart.Sorted() {
		t.Error("chart not sorted")
	}
	if chart.End() != 3*time.Second {
		t.Errorf("chart end %v", chart.End())
	}
	taps, holds, paths := chart.Counts()
	if taps != 4 || holds != 1 || paths != 0 {
		t.Errorf("counts %v %v %v", taps, holds, paths)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawChart
		field string
	}{
		{"no notes", RawChart{}, "notes"},
		{"missing time", RawChart{Notes: []RawNote{{Lane: "UL", Type: "PULSE"}}}, "timeMs"},
		{"negative time", RawChart{Notes: []RawNote{{TimeMs: f(-1), Lane: "UL", Type: "PULSE"}}}, "timeMs"},
		{"missing lane", RawChart{Notes: []RawNote{{TimeMs: f(1), Type: "PULSE"}}}, "lane"},
		{"unknown lane", RawChart{Notes: []RawNote{{TimeMs: f(1), Lane: "LEFT", Type: "PULSE"}}}, "lane"},
		{"missing kind", RawChart{Notes: []RawNote{{TimeMs: f(1), Lane: "UL"}}}, "type"},
		{"unknown kind", RawChart{Notes: []RawNote{{TimeMs: f(1), Lane: "UL", Type: "MINE"}}}, "type"},
		{"hold without duration", RawChart{Notes: []RawNote{{TimeMs: f(1), Lane: "UL", Type: "COMET"}}}, "durationMs"},
		{"empty hold", RawChart{Notes: []RawNote{{TimeMs: f(1), Lane: "UL", Type: "COMET", DurationMs: f(0)}}}, "durationMs"},
		{"path without segments", RawChart{Notes: []RawNote{{TimeMs: f(1), Lane: "UL", Type: "ARC"}}}, "arcPath"},
		{"path segment without time", RawChart{Notes: []RawNote{{TimeMs: f(1), Lane: "UL", Type: "ARC", ArcPath: []RawSegment{{Lane: "UR"}}}}}, "arcPath[0].timeMs"},
		{"path out of order", RawChart{Notes: []RawNote{{TimeMs: f(1), Lane: "UL", Type: "ARC", ArcPath: []RawSegment{{TimeMs: f(5), Lane: "UR"}, {TimeMs: f(2), Lane: "DR"}}}}}, "arcPath"},
		{"backwards chorus", RawChart{Notes: []RawNote{}, ChorusSections: []RawSection{{StartMs: 10, EndMs: 5}}}, "chorusSections"},
	}
	for _, test := range tests {
		_, err := Load(test.raw)
		var malformed *MalformedChartError
		if !errors.As(err, &malformed) {
			t.Errorf("%v: expected MalformedChartError, got %v", test.name, err)
			continue
		}
		if malformed.Field != test.field {
			t.Errorf("%v: field %q, expected %q", test.name, malformed.Field, test.field)
		}
	}
}

func TestParseLane(t *testing.T) {
	for _, l := range Lanes {
		p, ok := ParseLane(l.String())
		if !ok || p != l {
			t.Errorf("lane %v did not round trip", l)
		}
	}
	if _, ok := ParseLane("ul"); ok {
		t.Error("lanes are upper case")
	}
}
