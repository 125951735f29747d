package movement

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
)

func yawQuat(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), game.Up)
}

func TestSmoothStepsTowardsTarget(t *testing.T) {
	o := NewOrientationSmoother(mgl64.DegToRad(5), 1)
	current, target := yawQuat(0), yawQuat(90)

	current = o.Smooth(current, target)
	if got := mgl64.RadToDeg(Yaw(current)); math.Abs(got-5) > 1e-6 {
		t.Fatalf("expected to turn 5 degrees, turned %v", got)
	}
	for range 17 {
		current = o.Smooth(current, target)
	}
	if got := mgl64.RadToDeg(Yaw(current)); math.Abs(got-90) > 1e-6 {
		t.Fatalf("expected to reach the target after 18 steps, at %v", got)
	}
	if got := o.Smooth(current, target); !got.ApproxEqualThreshold(target, 1e-9) {
		t.Fatalf("expected to stay on target, got %v", got)
	}
}

func TestSmoothDoubleStep(t *testing.T) {
	o := NewOrientationSmoother(mgl64.DegToRad(5), 2)
	got := mgl64.RadToDeg(Yaw(o.Smooth(yawQuat(0), yawQuat(-90))))
	if math.Abs(got+10) > 1e-6 {
		t.Fatalf("expected two steps to turn -10 degrees, turned %v", got)
	}
}

func TestRotateTowardsTakesShortestArc(t *testing.T) {
	got := mgl64.RadToDeg(Yaw(RotateTowards(yawQuat(170), yawQuat(-170), mgl64.DegToRad(5))))
	if math.Abs(got-175) > 1e-6 {
		t.Fatalf("expected to turn through 180 degrees to 175, got %v", got)
	}
}

func TestTargetFacing(t *testing.T) {
	avatar := mgl64.Vec3{10, 0, 10}
	// The camera is behind the avatar on +z, so facing away from it is yaw π.
	if got := Yaw(TargetFacing(avatar, mgl64.Vec3{10, 100, 510}, 0)); math.Abs(math.Abs(got)-math.Pi) > 1e-9 {
		t.Fatalf("expected to face away from the camera, got yaw %v", got)
	}
	if got := Yaw(TargetFacing(avatar, mgl64.Vec3{10, 100, 510}, math.Pi/2)); math.Abs(got+math.Pi/2) > 1e-9 {
		t.Fatalf("expected to face left of the camera, got yaw %v", got)
	}
}

func TestAvatarPosition(t *testing.T) {
	c := collision.CapsuleFromBounds(mgl64.Vec3{1, 2, 3}, 180, 20)
	if got := AvatarPosition(c); got.Sub(mgl64.Vec3{1, 92, 3}).Len() > 1e-9 {
		t.Fatalf("expected the model centred on the capsule, got %v", got)
	}
}
