package toolchain

import (
	"context"
	"errors"
	"testing"
)

func fakeDetector(paths map[string]string, outputs map[string]string) *Detector {
	return &Detector{
		LookPath: func(name string) (string, error) {
			if p, ok := paths[name]; ok {
				return p, nil
			}
			return "", errors.New("executable file not found in $PATH")
		},
		Run: func(ctx context.Context, path string, args ...string) ([]byte, error) {
			return []byte(outputs[path]), nil
		},
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"v18.17.1\n", "18.17.1", false},
		{"10.2.4", "10.2.4", false},
		{"  v20.0.0  \nextra line", "20.0.0", false},
		{"not a version", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseVersion(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseVersion(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q): %v", tt.in, err)
			}
			if v.String() != tt.want {
				t.Errorf("ParseVersion(%q) = %s, want %s", tt.in, v, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	d := fakeDetector(
		map[string]string{"node": "/usr/bin/node"},
		map[string]string{"/usr/bin/node": "v18.17.1\n"},
	)

	tool, err := d.Detect(context.Background(), "node")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if tool.Path != "/usr/bin/node" || tool.Version.String() != "18.17.1" {
		t.Errorf("Detect = %+v", tool)
	}

	ok, err := tool.Satisfies(NodeConstraint)
	if err != nil || !ok {
		t.Errorf("Satisfies(%q) = %v, %v", NodeConstraint, ok, err)
	}
	ok, _ = tool.Satisfies(">= 20")
	if ok {
		t.Error("18.17.1 should not satisfy >= 20")
	}
	if _, err := tool.Satisfies("not a constraint"); err == nil {
		t.Error("expected constraint parse error")
	}
}

func TestDetect_Missing(t *testing.T) {
	d := fakeDetector(nil, nil)
	if _, err := d.Detect(context.Background(), "npm"); err == nil {
		t.Error("expected error for missing tool")
	}
}

func TestDetect_BadVersionOutput(t *testing.T) {
	d := fakeDetector(
		map[string]string{"npm": "/usr/bin/npm"},
		map[string]string{"/usr/bin/npm": "garbage"},
	)
	if _, err := d.Detect(context.Background(), "npm"); err == nil {
		t.Error("expected version parse error")
	}
}

func TestDetectAll(t *testing.T) {
	d := fakeDetector(
		map[string]string{"node": "/usr/bin/node", "npm": "/usr/bin/npm"},
		map[string]string{"/usr/bin/node": "v20.1.0", "/usr/bin/npm": "9.6.4"},
	)

	got := d.DetectAll(context.Background(), "node", "npm", "yarn")
	if len(got) != 3 {
		t.Fatalf("DetectAll returned %d results", len(got))
	}
	if got[0].Name != "node" || got[0].Tool.Version.String() != "20.1.0" {
		t.Errorf("node = %+v", got[0])
	}
	if got[1].Name != "npm" || got[1].Tool.Version.String() != "9.6.4" {
		t.Errorf("npm = %+v", got[1])
	}
	if got[2].Err == nil {
		t.Error("yarn should be reported missing")
	}
}
