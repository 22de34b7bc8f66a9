package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gogpu/region/internal/scenario"
)

func TestDemoScenario(t *testing.T) {
	doc, err := load("")
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	res, err := scenario.Run(context.Background(), doc)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var buf bytes.Buffer
	report(&buf, res, doc)
	out := buf.String()
	for _, want := range []string{
		"region frame\n",
		"region dialog.clip\n",
		"damage\n",
		"output lcd\n",
		"output portrait\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}

	if !res.Damage.Equal(res.Outputs["lcd"]) {
		t.Error("unrotated output should match the framebuffer damage")
	}
	if err := res.Outputs["portrait"].Check(); err != nil {
		t.Errorf("portrait output invalid: %v", err)
	}
}
