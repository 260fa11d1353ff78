package displacement

import (
	"fmt"
	"math"

	"facewarp/internal/landmark"

	"gonum.org/v1/gonum/mat"
)

// Kernel names accepted in Options.Function.
const (
	Linear              = "linear"
	Cubic               = "cubic"
	Quintic             = "quintic"
	ThinPlate           = "thin_plate"
	Gaussian            = "gaussian"
	Multiquadric        = "multiquadric"
	InverseMultiquadric = "inverse_multiquadric"
)

// Kernels lists every supported radial basis function.
var Kernels = []string{Linear, Cubic, Quintic, ThinPlate, Gaussian, Multiquadric, InverseMultiquadric}

type kernelFunc func(r, eps float64) float64

func kernelFor(name string) (kernelFunc, error) {
	switch name {
	case "", Linear:
		return func(r, _ float64) float64 { return r }, nil
	case Cubic:
		return func(r, _ float64) float64 { return r * r * r }, nil
	case Quintic:
		return func(r, _ float64) float64 { return r * r * r * r * r }, nil
	case ThinPlate:
		return func(r, _ float64) float64 {
			if r == 0 {
				return 0
			}
			return r * r * math.Log(r)
		}, nil
	case Gaussian:
		return func(r, eps float64) float64 { q := r / eps; return math.Exp(-q * q) }, nil
	case Multiquadric:
		return func(r, eps float64) float64 { q := r / eps; return math.Sqrt(q*q + 1) }, nil
	case InverseMultiquadric:
		return func(r, eps float64) float64 { q := r / eps; return 1 / math.Sqrt(q*q+1) }, nil
	default:
		return nil, fmt.Errorf("displacement: unknown interpolation function %q", name)
	}
}

// rbf interpolates two scalar fields (x and y deltas) over scattered nodes.
type rbf struct {
	nodes  []landmark.Point
	wx, wy []float64
	kernel kernelFunc
	eps    float64
}

// fitRBF solves Φ·w = values for both delta components at once.
func fitRBF(nodes []landmark.Point, vx, vy []float64, opts Options) (*rbf, error) {
	kernel, err := kernelFor(opts.Function)
	if err != nil {
		return nil, err
	}
	eps := opts.Epsilon
	if eps <= 0 {
		eps = defaultEpsilon(nodes)
	}

	n := len(nodes)
	phi := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := kernel(dist(nodes[i], nodes[j]), eps)
			if i == j {
				v -= opts.Smooth
			}
			phi.Set(i, j, v)
		}
	}

	rhs := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		rhs.Set(i, 0, vx[i])
		rhs.Set(i, 1, vy[i])
	}

	var w mat.Dense
	if err := w.Solve(phi, rhs); err != nil {
		return nil, fmt.Errorf("displacement: solve %d-node system: %w", n, err)
	}

	out := &rbf{
		nodes:  nodes,
		wx:     make([]float64, n),
		wy:     make([]float64, n),
		kernel: kernel,
		eps:    eps,
	}
	for i := 0; i < n; i++ {
		out.wx[i] = w.At(i, 0)
		out.wy[i] = w.At(i, 1)
	}
	return out, nil
}

func (r *rbf) eval(x, y float64) (float64, float64) {
	var dx, dy float64
	for i, nd := range r.nodes {
		k := r.kernel(math.Hypot(x-nd.X, y-nd.Y), r.eps)
		dx += r.wx[i] * k
		dy += r.wy[i] * k
	}
	return dx, dy
}

// defaultEpsilon is the edge of a square holding one node on average,
// taken over the node bounding box.
func defaultEpsilon(nodes []landmark.Point) float64 {
	if len(nodes) == 0 {
		return 1
	}
	minX, maxX := nodes[0].X, nodes[0].X
	minY, maxY := nodes[0].Y, nodes[0].Y
	for _, p := range nodes[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	var area float64
	switch w, h := maxX-minX, maxY-minY; {
	case w > 0 && h > 0:
		area = w * h
	case w > 0:
		area = w * w
	case h > 0:
		area = h * h
	default:
		return 1
	}
	return math.Sqrt(area / float64(len(nodes)))
}

func dist(a, b landmark.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
