/*
Package robot explores an unknown bounded grid using only local sensing.

The robot can ask whether each of its four neighbours is passable and can
step into a passable neighbour. It never sees the map. An Explorer performs a
depth-first traversal: on every cell it scans the unexplored directions,
records new cells in its Ledger and Travel Node tree, descends into each new
child in canonical order and finally steps back the way it came. When Explore
returns the robot stands on its starting cell again and every reachable cell
has been visited exactly once by the traversal.
*/
package robot
