package control

import (
	"testing"

	"controlling_kiln/internal/models"
)

func TestSetpoint_ExactEndpoints(t *testing.T) {
	phase := models.Phase{DurationSeconds: 10, TargetTempC: 100}

	if got := Setpoint(phase, BaselineTempC, 0); got != BaselineTempC {
		t.Fatalf("setpoint(0) = %.2f, want %.2f", got, BaselineTempC)
	}
	if got := Setpoint(phase, BaselineTempC, 10); got != 100 {
		t.Fatalf("setpoint(D) = %.2f, want 100", got)
	}
}

func TestSetpoint_MidRampExample(t *testing.T) {
	// profile = [{duration=10, target=100}], baseline 25:
	// at elapsed=5 the ramp target is 25 + (100-25)/10*5 = 62.5.
	phase := models.Phase{DurationSeconds: 10, TargetTempC: 100}
	if got := Setpoint(phase, BaselineTempC, 5); got != 62.5 {
		t.Fatalf("setpoint(5) = %.2f, want 62.5", got)
	}
}

func TestSetpoint_MonotonicBetweenEndpoints(t *testing.T) {
	t.Run("heating ramp rises", func(t *testing.T) {
		phase := models.Phase{DurationSeconds: 8, TargetTempC: 400}
		prev := Setpoint(phase, BaselineTempC, 0)
		for e := 1; e <= 8; e++ {
			cur := Setpoint(phase, BaselineTempC, float64(e))
			if cur <= prev {
				t.Fatalf("setpoint not increasing at elapsed=%d: %.2f -> %.2f", e, prev, cur)
			}
			prev = cur
		}
	})

	t.Run("cooling ramp falls", func(t *testing.T) {
		phase := models.Phase{DurationSeconds: 6, TargetTempC: 100}
		prev := Setpoint(phase, 400, 0)
		for e := 1; e <= 6; e++ {
			cur := Setpoint(phase, 400, float64(e))
			if cur >= prev {
				t.Fatalf("setpoint not decreasing at elapsed=%d: %.2f -> %.2f", e, prev, cur)
			}
			prev = cur
		}
	})
}

func TestGain_Sign(t *testing.T) {
	heat := models.Phase{DurationSeconds: 5, TargetTempC: 75}
	if g := Gain(heat, BaselineTempC); g != 10 {
		t.Fatalf("heating gain = %.2f, want 10", g)
	}
	cool := models.Phase{DurationSeconds: 10, TargetTempC: 100}
	if g := Gain(cool, 200); g != -10 {
		t.Fatalf("cooling gain = %.2f, want -10", g)
	}
}
