/*
Package matcher provides first-class predicates over device names, used by
module-mapping constraints.

The textual form accepted by Parse is:

	cloud              literal device name
	prefix:b-          every name starting with "b-"
	regexp:^b-\d+-0$   every name matching the regular expression
	b-*-0              glob (any of * ? [ present)
*/
package matcher
