// Package viz renders trajectories in the terminal.
//
// [Canvas] is a braille pixel grid whose cells remember which body drew them,
// [View] maps world coordinates onto it with equal axis scaling, and [Player]
// is a Bubble Tea model that replays a trajectory frame by frame, growing one
// polyline per body.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from step 0
//	+/-   - Double/halve steps per frame
//	→/L   - Advance one frame while paused
//	T     - Cycle themes
//	Q     - Quit
package viz
