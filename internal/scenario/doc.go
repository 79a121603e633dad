// Package scenario holds the smart waste management deployment: the tier
// parameters of its device tree, its application graph and its placement
// constraints. Two variants exist; they differ only in the sensor/actuator
// tags and in how bins are named.
package scenario
