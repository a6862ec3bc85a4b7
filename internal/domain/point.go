package domain

import "math"

type Point3 [3]float64

func (p Point3) Sub(q Point3) Point3 {
	return Point3{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

func (p Point3) Norm() float64 {
	return math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
}
