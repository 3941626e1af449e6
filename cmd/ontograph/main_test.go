package main

import "testing"

func TestSummaryPathFor(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"cmso.owl", "cmso.summary.json"},
		{"/data/ontologies/pldo.owl", "pldo.summary.json"},
		{"https://example.org/owl/cmso.owl", "cmso.summary.json"},
		{"https://example.org/owl/cmso.owl?raw=true", "cmso.summary.json"},
		{"", "ontology.summary.json"},
	}
	for _, tt := range tests {
		if got := summaryPathFor(tt.src); got != tt.want {
			t.Errorf("summaryPathFor(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" hasDefect, hasVolume ,,hasNote ")
	want := []string{"hasDefect", "hasVolume", "hasNote"}
	if len(got) != len(want) {
		t.Fatalf("splitList returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
