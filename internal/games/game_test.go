package games

import "testing"

func TestRegistry(t *testing.T) {
	want := []string{
		"coinflip", "dice", "roulette", "crash", "mines",
		"blackjack", "videopoker", "poker", "keno", "sicbo", "slots",
		"baccarat",
	}

	for _, id := range want {
		game, ok := Get(id)
		if !ok {
			t.Errorf("game %q not registered", id)
			continue
		}
		if game.Spec().ID != id {
			t.Errorf("game %q reports ID %q", id, game.Spec().ID)
		}
	}

	if len(List()) != len(want) {
		t.Errorf("registry holds %d games, expected %d", len(List()), len(want))
	}

	if _, ok := Get("hilo"); ok {
		t.Error("unexpected game registered")
	}
}

func TestRegistryEvaluate(t *testing.T) {
	seeds := Seeds{Server: "test_server", Client: "test_client"}

	for _, id := range List() {
		game, _ := Get(id)
		result, err := game.Evaluate(seeds, 1, nil)
		if err != nil {
			t.Errorf("%s: Evaluate failed: %v", id, err)
			continue
		}
		if result.MetricLabel != game.Spec().MetricLabel {
			t.Errorf("%s: metric label %q does not match spec %q", id, result.MetricLabel, game.Spec().MetricLabel)
		}

		replay, err := game.Evaluate(seeds, 1, nil)
		if err != nil {
			t.Errorf("%s: replay failed: %v", id, err)
			continue
		}
		if replay.Metric != result.Metric {
			t.Errorf("%s: determinism failed: %f != %f", id, replay.Metric, result.Metric)
		}
	}
}
