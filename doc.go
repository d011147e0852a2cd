/*
Package rotarray renders montages of 3D scenes.

A montage is a grid of images. Each row shows one scene photographed by a
camera orbiting the scene's focal point in equal steps, optionally preceded
by a label image naming the row:

	img, err := rotarray.RotationArray(ctx, [][]*scene.Actor{
		{scene.Sphere(r3.Vec{}, 1, green)},
		{bolt},
	}, rotarray.Config{
		Rotations: 4,
		RowNames:  []string{"sphere", "bolt"},
	})

The building blocks are exported as well: scene.Window captures a scene
off-screen, RotationSeries turns a window's camera through a full turn,
Label renders captions and Concatenate appends images along an axis.
*/
package rotarray
