/*
Package cash implements token balances and constant product trading pairs.

Every token is declared in the genesis together with its minter. Balances
of a token are moved by the Controller. The host uses the Executor to
execute the token calls returned by extension handlers.

A pair holds the reserves of two tokens on its own address. Tokens sent to
a pair with a SwapMsg hook are exchanged for the other token of the pair.
The ratio of the reserves is the price used by the vault.
*/
package cash
