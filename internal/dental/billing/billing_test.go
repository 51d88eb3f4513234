package billing

import "testing"

func TestCodesFor_FillingSurfaceScaling(t *testing.T) {
	cases := []struct {
		surfaces int
		want     string
	}{
		{0, "D2391"}, // no surface recorded counts as one
		{1, "D2391"},
		{2, "D2392"},
		{3, "D2393"},
		{4, "D2394"},
		{6, "D2394"}, // capped
	}
	for _, tc := range cases {
		codes := CodesFor("filling", tc.surfaces)
		if len(codes) != 1 || codes[0].Code != tc.want {
			t.Errorf("CodesFor(filling, %d) = %v, want %s", tc.surfaces, codes, tc.want)
		}
	}
}

func TestCodesFor_ByType(t *testing.T) {
	if codes := CodesFor("extraction", 0); len(codes) != 1 || codes[0].Code != "D7140" {
		t.Errorf("extraction codes = %v", codes)
	}
	if codes := CodesFor("hygiene", 0); len(codes) != 2 {
		t.Errorf("hygiene codes = %v", codes)
	}
	if codes := CodesFor("orthodontics", 0); len(codes) != 0 {
		t.Errorf("unknown type should derive no codes, got %v", codes)
	}
}

func TestCodesFor_ReturnsCopy(t *testing.T) {
	a := CodesFor("hygiene", 0)
	a[0].Code = "XXXX"
	b := CodesFor("hygiene", 0)
	if b[0].Code == "XXXX" {
		t.Error("CodesFor leaked the shared table")
	}
}

func TestEncode(t *testing.T) {
	got := Encode([]Code{{Code: "D1110"}, {Code: "D4341"}})
	if got != `["D1110","D4341"]` {
		t.Errorf("Encode = %s", got)
	}
	if Encode(nil) != "[]" {
		t.Errorf("Encode(nil) = %s", Encode(nil))
	}
}
