package meshing

import "voxelmesh/internal/world"

// faceForAxis maps a sweep axis (0=X 1=Y 2=Z) and side (0=positive
// 1=negative) to the emitted face.
var faceForAxis = [3][2]world.Face{
	{world.FaceEast, world.FaceWest},
	{world.FaceTop, world.FaceBottom},
	{world.FaceNorth, world.FaceSouth},
}

// axisDir is the positive unit step along each sweep axis.
var axisDir = [3][3]int{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// spanU and spanV are the in-plane edge vectors of each face's quad, chosen
// so that spanU x spanV equals the outward normal. Walking the corners
// base, base+u, base+u+v, base+v is therefore counter-clockwise when viewed
// from outside the solid.
var spanU = [6][3]int{
	world.FaceNorth:  {1, 0, 0},
	world.FaceSouth:  {0, 1, 0},
	world.FaceEast:   {0, 1, 0},
	world.FaceWest:   {0, 0, 1},
	world.FaceTop:    {0, 0, 1},
	world.FaceBottom: {1, 0, 0},
}

var spanV = [6][3]int{
	world.FaceNorth:  {0, 1, 0},
	world.FaceSouth:  {1, 0, 0},
	world.FaceEast:   {0, 0, 1},
	world.FaceWest:   {0, 1, 0},
	world.FaceTop:    {1, 0, 0},
	world.FaceBottom: {0, 0, 1},
}

// quadCorners enumerates the four corners of a face as (u,v) multipliers of
// the span vectors, in emission order.
var quadCorners = [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// faceUVs maps each corner to texture coordinates, per face, so that side
// faces stand upright (texture v follows +Y) and the top and bottom read in
// world XZ.
var faceUVs = [6][4][2]float32{
	world.FaceNorth:  {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	world.FaceSouth:  {{0, 0}, {0, 1}, {1, 1}, {1, 0}},
	world.FaceEast:   {{0, 0}, {0, 1}, {1, 1}, {1, 0}},
	world.FaceWest:   {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	world.FaceTop:    {{0, 0}, {0, 1}, {1, 1}, {1, 0}},
	world.FaceBottom: {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
}
