/*
Package nexustest provides helpers for testing extensions: unique test
addresses, contexts carrying a block time and a signer, and handler and
decorator mocks that count their calls.
*/
package nexustest
