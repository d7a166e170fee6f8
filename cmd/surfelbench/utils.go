package main

import "github.com/go-gl/mathgl/mgl32"

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}
