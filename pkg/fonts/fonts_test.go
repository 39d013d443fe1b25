package fonts

import "testing"

func TestFaceNeverNil(t *testing.T) {
	for _, size := range []float64{10, 12, 18, 24} {
		if Face(size) == nil {
			t.Fatalf("Face(%v) = nil", size)
		}
		if BoldFace(size) == nil {
			t.Fatalf("BoldFace(%v) = nil", size)
		}
	}
}

func TestFaceCached(t *testing.T) {
	a := Face(14)
	b := Face(14)
	if a != b {
		t.Error("Face(14) not cached across calls")
	}
}

func TestFaceMetricsUsable(t *testing.T) {
	face := Face(12)
	m := face.Metrics()
	if m.Height <= 0 {
		t.Errorf("face height = %v, want > 0", m.Height)
	}
}
