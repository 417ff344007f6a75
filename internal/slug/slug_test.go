package slug

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Bearing_ID_1":     "bearing_id_1",
		"Подшипник 6205":   "подшипник_6205",
		"  Stator rewind ": "stator_rewind",
		"---":              "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugifyStable(t *testing.T) {
	// The slug doubles as the stacked-item id, so it must be deterministic.
	a := Slugify("Вал ротора_ID_2")
	b := Slugify("Вал ротора_ID_2")
	if a != b || a == "" {
		t.Fatalf("expected stable non-empty slug, got %q and %q", a, b)
	}
	if !IsSlug(a) {
		t.Fatalf("expected %q to be a valid slug", a)
	}
}
