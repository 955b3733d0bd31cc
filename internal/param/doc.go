/*
Package param holds the unit of log configuration: a Parameter, identified by
the canonical key `id:unit`.

The first character of an id tells what kind of parameter it is: `P` for a
regular parameter defined once for the protocol, `E` for an extended
parameter whose address depends on the ECU.
*/
package param
