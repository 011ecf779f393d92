package score

import (
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/orbital/internal/game"
)

func testChart(lane game.Lane) *game.Chart {
	return &game.Chart{
		Title: "store",
		Notes: []game.Note{
			game.Tap{Head: game.Head{Time: time.Second, Lane: lane}},
			game.Hold{Head: game.Head{Time: 2 * time.Second, Lane: lane}, Duration: time.Second},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if nil != err {
		t.Fatal(err)
	}
	defer store.Close()

	played := time.Unix(1000, 0)
	store.now = func() time.Time {
		played = played.Add(time.Minute)
		return played
	}

	chart := testChart(game.UpLeft)
	inputs := []game.Input{
		{Lane: game.UpLeft, Action: game.Press, Time: time.Second},
		{Lane: game.UpLeft, Action: game.Release, Time: 1100 * time.Millisecond},
	}
	low := Result{Score: 500, MaxCombo: 1, Accuracy: 50, Perfect: 1, Miss: 1, Rank: "D"}
	high := Result{Score: 2000, MaxCombo: 2, Accuracy: 100, Perfect: 2, Rank: "S", FullCombo: true, AllPerfect: true}

	if _, err := store.Save(chart, high, inputs); nil != err {
		t.Fatal(err)
	}
	id, err := store.Save(chart, low, inputs)
	if nil != err {
		t.Fatal(err)
	}
	if _, err := store.Save(testChart(game.DownRight), high, nil); nil != err {
		t.Fatal(err)
	}

	histories, err := store.Load(chart)
	if nil != err {
		t.Fatal(err)
	}
	if len(histories) != 2 {
		t.Fatalf("loaded %v sessions, expected 2", len(histories))
	}
	if histories[0].ID != id || histories[0].Result != low {
		t.Errorf("newest session is %+v", histories[0])
	}
	if len(histories[0].Inputs) != len(inputs) {
		t.Fatalf("inputs %v, expected %v", histories[0].Inputs, inputs)
	}
	for i := range inputs {
		if histories[0].Inputs[i] != inputs[i] {
			t.Errorf("input %v is %+v, expected %+v", i, histories[0].Inputs[i], inputs[i])
		}
	}

	best, err := store.Best(chart)
	if nil != err {
		t.Fatal(err)
	}
	if best == nil || best.Result != high {
		t.Errorf("best is %+v", best)
	}
}

func TestHashChart(t *testing.T) {
	a, b := testChart(game.UpLeft), testChart(game.UpLeft)
	b.Title = "renamed"
	if HashChart(a) != HashChart(b) {
		t.Error("title changed the chart hash")
	}
	if HashChart(a) == HashChart(testChart(game.UpRight)) {
		t.Error("lane change did not change the chart hash")
	}
}
