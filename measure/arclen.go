package measure

import "math"

// SolveITP returns a zero of f in [a, b], found with the [ITP method]
// (interpolate, truncate, project). It never needs more than n0 evaluations
// beyond what bisection would, and converges much faster on smooth functions.
//
// ya and yb are f(a) and f(b); ya must be negative and yb positive. k1 scales
// the truncation step, k2 is fixed at 2. For monotonic f the result lies
// within epsilon of the zero.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
func SolveITP(f func(float64) float64, a, b, epsilon float64, n0 int, k1, ya, yb float64) float64 {
	half := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1, 0))
	// Distance the probe may stray from the midpoint, halved every round.
	slack := epsilon * float64(uint64(1)<<(n0+half))
	for b-a > 2*epsilon {
		x := itpPoint(a, b, ya, yb, k1, slack-(b-a)/2)
		switch y := f(x); {
		case y > 0:
			b, yb = x, y
		case y < 0:
			a, ya = x, y
		default:
			return x
		}
		slack /= 2
	}
	return (a + b) / 2
}

// itpPoint picks the next point to evaluate: the regula falsi estimate,
// moved towards the midpoint by k1(b-a)² and then kept within r of it.
func itpPoint(a, b, ya, yb, k1, r float64) float64 {
	mid := (a + b) / 2
	falsi := (yb*a - ya*b) / (yb - ya)
	sigma := mid - falsi
	x := mid
	if delta := k1 * (b - a) * (b - a); delta <= math.Abs(sigma) {
		x = falsi + math.Copysign(delta, sigma)
	}
	if math.Abs(x-mid) > r {
		x = mid - math.Copysign(r, sigma)
	}
	return x
}

// arclenWalker tracks the arc length from the start of a segment to the
// last queried parameter. Each query only measures the stretch between the
// previous parameter and the new one.
type arclenWalker struct {
	seg      Segment
	accuracy float64
	t        float64
	length   float64
}

func (w *arclenWalker) at(t float64) float64 {
	d := w.seg.SubsegmentCurve(min(w.t, t), max(w.t, t)).Arclen(w.accuracy)
	if t < w.t {
		d = -d
	}
	w.t = t
	w.length += d
	return w.length
}

// SolveForArclen returns the parameter at which the segment has the given
// arc length from its start. Segments implementing [ArclenSolver] are
// deferred to.
func SolveForArclen(seg Segment, arclen float64, accuracy float64) float64 {
	if seg, ok := seg.(ArclenSolver); ok {
		return seg.SolveForArclen(arclen, accuracy)
	}
	if arclen <= 0 {
		return 0
	}
	total := seg.Arclen(accuracy)
	if arclen >= total {
		return 1
	}
	epsilon := accuracy / total
	// The error of every walked stretch adds up.
	steps := 1 - min(math.Ceil(math.Log2(epsilon)), 0)
	w := arclenWalker{seg: seg, accuracy: accuracy / steps}
	f := func(t float64) float64 { return w.at(t) - arclen }
	return SolveITP(f, 0, 1, epsilon, 1, 0.2, -arclen, total-arclen)
}

func arclenQuadrature(coeffs [][2]float64, dm Vec2, dm1 Vec2, dm2 Vec2) float64 {
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		d := dm.Add(dm2.Mul(xi * xi))
		dpx := d.Add(dm1.Mul(xi)).Hypot()
		dmx := d.Sub(dm1.Mul(xi)).Hypot()
		sum += 1.5 * wi * (dpx + dmx)
	}
	return sum
}

// Tables of Legendre-Gauss quadrature coefficients, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>

var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs8Half = [...][2]float64{
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs16Half = [...][2]float64{
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, 0.9894009349916499},
}

var gaussLegendreCoeffs24Half = [...][2]float64{
	{0.1279381953467522, 0.0640568928626056},
	{0.1258374563468283, 0.1911188674736163},
	{0.1216704729278034, 0.3150426796961634},
	{0.1155056680537256, 0.4337935076260451},
	{0.1074442701159656, 0.5454214713888396},
	{0.0976186521041139, 0.6480936519369755},
	{0.0861901615319533, 0.7401241915785544},
	{0.0733464814110803, 0.8200019859739029},
	{0.0592985849154368, 0.8864155270044011},
	{0.0442774388174198, 0.9382745520027328},
	{0.0285313886289337, 0.9747285559713095},
	{0.0123412297999872, 0.9951872199970213},
}
