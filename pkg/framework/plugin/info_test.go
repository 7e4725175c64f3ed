package plugin

import (
	"bytes"
	"strings"
	"testing"

	"github.com/justyntemme/fxroute/pkg/framework/bus"
)

func TestUIDGeneration(t *testing.T) {
	tests := []struct {
		name     string
		pluginID string
	}{
		{"Engine ID", "com.fxroute.effects"},
		{"Other ID", "com.mycompany.newplugin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Info{ID: tt.pluginID}

			if info.UID() != info.UID() {
				t.Errorf("UID generation is not deterministic for %s", tt.pluginID)
			}
			if info.UID() == info.ControllerUID() {
				t.Error("controller UID must differ from the processor UID")
			}
			if err := info.ValidateUID(); err != nil {
				t.Errorf("UID validation failed for %s: %v", tt.pluginID, err)
			}
		})
	}
}

func TestUIDUniqueness(t *testing.T) {
	plugins := []string{
		"com.company1.plugin1",
		"com.company1.plugin2",
		"com.company2.plugin1",
		"com.different.name",
	}

	uids := make(map[[16]byte]string)
	for _, pluginID := range plugins {
		uid := Info{ID: pluginID}.UID()
		if existingID, exists := uids[uid]; exists {
			t.Errorf("UID collision between %s and %s", pluginID, existingID)
		}
		uids[uid] = pluginID
	}
}

func TestUIDValidation(t *testing.T) {
	if err := (Info{}).ValidateUID(); err == nil {
		t.Error("empty ID should fail validation")
	}
	s := Info{ID: "com.fxroute.effects", Name: "FX", Version: "1.0.0"}.String()
	if !strings.HasPrefix(s, "FX 1.0.0 (") {
		t.Errorf("String() = %q", s)
	}
}

func TestBase(t *testing.T) {
	b := NewBase(Info{ID: "com.fxroute.effects"}, bus.NewEffectsConfiguration())

	if b.Parameters() == nil || b.Parameters().Count() != 0 {
		t.Error("new base should have an empty registry")
	}
	if b.Buses().GetBusCount(bus.MediaTypeAudio, bus.DirectionOutput) != 2 {
		t.Error("bus layout not kept")
	}
	if err := b.SetState(strings.NewReader("ignored")); err != nil {
		t.Errorf("SetState: %v", err)
	}
	var buf bytes.Buffer
	if err := b.GetState(&buf); err != nil || buf.Len() != 0 {
		t.Errorf("GetState wrote %d bytes, err %v", buf.Len(), err)
	}
}
