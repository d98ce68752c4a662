// Package line implements the pulse transport on top of a pulse-timing
// peripheral: the capture engine, the transmit engine and the adapter
// exposing both as edge.Bus.
package line

// The peripheral is reached only through Receiver and Transmitter.
// Register-level setup belongs to whoever constructs those; this package
// receives its pass-through parameters in Config and hands TxConfig to
// Transmitter.Configure once.
//
// Engines are owned by one goroutine each and are not safe for
// concurrent use.
