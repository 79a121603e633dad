// Package yaml_adapter reads and writes topology descriptions as YAML. The
// document has three top-level lists, nodes, sensors and actuators, whose
// keys mirror the HCL attributes. Unknown keys and missing required keys are
// rejected.
package yaml_adapter
