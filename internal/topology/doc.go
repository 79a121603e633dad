/*
Package topology builds the physical side of a fog deployment: a tree of
fog nodes with sensors and actuators attached to its leaves.

A Topology is an arena. Nodes, sensors and actuators are stored by value
and refer to each other by integer id only (a node's parent, an endpoint's
gateway), so a finished Topology holds no shared mutable references and can
be handed to the placement engine as read-only data.

Two construction modes produce the same entity set:

 1. Generate walks a Schedule top-down. Every tier fixes the node
    parameters and the fan-out; the leaf tier also gets one sensor and one
    actuator per node.

 2. FromDescription instantiates a config.Topology that was loaded from a
    description file. Parent references are resolved by name, checked for
    cycles with the dag package, and declared levels must match tree depth.

Both modes finish with Verify, so every returned Topology satisfies the same
postconditions: exactly one root, resolved parents, level equal to depth,
unique ids and names, and sensor/actuator gateways that resolve to leaves.
Construction is all-or-nothing; on failure no Topology is returned.
*/
package topology
