package camera

import (
	"goki.dev/mat32/v2"

	"github.com/pthm-cable/gimbal/mathutil"
)

// velocity is the per-component damping accumulator. Only the field
// matching the component's kind is used.
type velocity struct {
	scalar float32
	vec    mat32.Vec3
	quat   mat32.Quat
}

// Interpolator owns a displayed state (now) and an interaction target (end)
// of the same variant, plus one velocity per damped component. Transform
// calls mutate end only; Update damps now toward end once per frame. One
// engine serves all three variants, driven by their component lists.
type Interpolator struct {
	now  State
	end  State
	vels []velocity
}

// NewInterpolator returns an interpolator of the given mode with both
// states at the variant defaults and zero velocities.
func NewInterpolator(mode Mode) *Interpolator {
	now := NewState(mode)
	ip := &Interpolator{
		now:  now,
		end:  now.clone(),
		vels: make([]velocity, len(now.components())),
	}
	ip.resetVelocities()
	return ip
}

// Mode identifies the variant both states share.
func (ip *Interpolator) Mode() Mode { return ip.now.Mode() }

// Now returns the displayed state. Callers read it to place the camera;
// mutating it directly bypasses damping.
func (ip *Interpolator) Now() State { return ip.now }

// End returns the interaction target state.
func (ip *Interpolator) End() State { return ip.end }

// resetVelocities zeroes every accumulator; quaternion velocities reset to
// the component's current value, the fixed point of their slerp law.
func (ip *Interpolator) resetVelocities() {
	comps := ip.now.components()
	for i := range ip.vels {
		ip.vels[i] = velocity{}
		if comps[i].kind == kindQuat {
			ip.vels[i].quat = *comps[i].quat
		}
	}
}

// Transform calls forward to end only; now is never touched by them.

func (ip *Interpolator) SetFromObject(t Transform) {
	ip.end.SetFromObject(t.Position, t.Rotation, t.Up)
}

func (ip *Interpolator) SetPosition(to mat32.Vec3)    { ip.end.SetPosition(to) }
func (ip *Interpolator) SetOrbitCenter(to mat32.Vec3) { ip.end.SetOrbitCenter(to) }
func (ip *Interpolator) LookAt(target mat32.Vec3)     { ip.end.LookAt(target) }

func (ip *Interpolator) Dolly(scale, minStep, minDistance, maxDistance float32) {
	ip.end.Dolly(scale, minStep, minDistance, maxDistance)
}

func (ip *Interpolator) RotateLeft(theta float32)   { ip.end.RotateLeft(theta) }
func (ip *Interpolator) RotateUp(phi float32)       { ip.end.RotateUp(phi) }
func (ip *Interpolator) PanLeft(delta, fov float32) { ip.end.PanLeft(delta, fov) }
func (ip *Interpolator) PanUp(delta, fov float32)   { ip.end.PanUp(delta, fov) }
func (ip *Interpolator) ClampDistance(min, max float32) {
	ip.end.ClampDistance(min, max)
}

// Update advances now toward end by one damped step and reports whether
// any component is still converging. Components already within tolerance
// snap exactly and zero their velocity so no residual drift accumulates.
// Pending-translation pools are drained instead of converged: the damped
// chunk is folded into BOTH states' rotation/distance and removed from
// end's pool within this same call, so now and end cannot drift apart.
// Once everything has settled, end is resynced from the normalized now so
// later relative operations compose against the true current state.
func (ip *Interpolator) Update(smoothTime, deltaTime float32) bool {
	nowC := ip.now.components()
	endC := ip.end.components()
	active := false

	for i := range nowC {
		n, e := nowC[i], endC[i]
		v := &ip.vels[i]
		switch n.kind {
		case kindScalar:
			if mathutil.ApproxEqual(*n.scalar, *e.scalar) {
				*n.scalar = *e.scalar
				v.scalar = 0
				continue
			}
			*n.scalar = mathutil.SmoothDamp(*n.scalar, *e.scalar, &v.scalar, smoothTime, mat32.Infinity, deltaTime)
			active = true
		case kindVector:
			if mathutil.ApproxEqualVec3(*n.vec, *e.vec) {
				*n.vec = *e.vec
				v.vec = mat32.Vec3{}
				continue
			}
			*n.vec = mathutil.SmoothDampVec3(*n.vec, *e.vec, &v.vec, smoothTime, mat32.Infinity, deltaTime)
			active = true
		case kindQuat:
			if mathutil.ApproxEqualQuat(*n.quat, *e.quat) {
				*n.quat = *e.quat
				v.quat = *e.quat
				continue
			}
			*n.quat = mathutil.SmoothDampQuat(*n.quat, *e.quat, &v.quat, smoothTime, deltaTime)
			active = true
		case kindPending:
			if mathutil.ApproxZeroVec3(*e.vec) {
				*e.vec = mat32.Vec3{}
				v.vec = mat32.Vec3{}
				continue
			}
			moved := mathutil.SmoothDampVec3(mat32.Vec3{}, *e.vec, &v.vec, smoothTime, mat32.Infinity, deltaTime)
			ip.now.applyTranslation(moved)
			ip.end.applyTranslation(moved)
			*e.vec = e.vec.Sub(moved)
			active = true
		}
	}

	ip.now.refresh()
	if !active {
		ip.now.Normalize()
		copyComponents(ip.now, ip.end)
	}
	return active
}

// JumpToEnd copies end into now directly, bypassing damping.
func (ip *Interpolator) JumpToEnd() {
	ip.end.Normalize()
	copyComponents(ip.end, ip.now)
	ip.resetVelocities()
}

// DiscardEnd aborts the in-flight interaction: end becomes the normalized
// now, so no stale target motion resumes later.
func (ip *Interpolator) DiscardEnd() {
	ip.now.Normalize()
	copyComponents(ip.now, ip.end)
	ip.resetVelocities()
}

// ApplyToObject writes the displayed pose outward. Pure: no internal
// mutation.
func (ip *Interpolator) ApplyToObject(t *Transform) {
	t.Position = ip.now.Position()
	t.Rotation = ip.now.Orientation()
	t.Up = ip.now.Up()
}

// SaveState snapshots the displayed state.
func (ip *Interpolator) SaveState() SaveState {
	return ip.now.Save()
}

// LoadState writes into the target only; the load takes visible effect as
// interpolation runs, or immediately after JumpToEnd.
func (ip *Interpolator) LoadState(s SaveState) {
	ip.end.Load(s)
}

// SwitchMode returns a fresh interpolator of the destination variant seeded
// from this one's now/end snapshots, best effort per the SaveState bridge.
// Switching to the current mode returns the receiver unchanged.
func (ip *Interpolator) SwitchMode(mode Mode) *Interpolator {
	if mode == ip.Mode() {
		return ip
	}
	nowSave := ip.now.Save()
	endSave := ip.end.Save()
	next := NewInterpolator(mode)
	next.now.Load(nowSave)
	next.end.Load(endSave)
	next.now.refresh()
	next.end.refresh()
	next.resetVelocities()
	return next
}

// copyComponents copies every component value from one state into another
// of the same variant.
func copyComponents(from, to State) {
	f := from.components()
	t := to.components()
	for i := range f {
		switch f[i].kind {
		case kindScalar:
			*t[i].scalar = *f[i].scalar
		case kindVector, kindPending:
			*t[i].vec = *f[i].vec
		case kindQuat:
			*t[i].quat = *f[i].quat
		}
	}
	to.refresh()
}
