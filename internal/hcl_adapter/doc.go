// Package hcl_adapter reads and writes topology descriptions as HCL.
//
// A description is a list of labeled blocks:
//
//	node "cloud" { id = 1  level = 0  mips = 44800 ... cost { ... } }
//	node "edge"  { id = 2  parent = "cloud"  level = 1 ... uplink_latency = 2 }
//	sensor "s-0" { id = 3  tuple_type = "BIN"  gateway = "edge" ... distribution { kind = "deterministic"  mean = 5 } }
//	actuator "act-0" { id = 4  actuator_type = "ACT_CONTROL"  gateway = "edge"  latency = 1 }
//
// Every attribute is required except parent, and uplink_latency on the root.
// A distribution needs deviation when its kind is normal and spread when it
// is uniform. Any attribute or block not listed is rejected.
package hcl_adapter
