/*
Package vault implements the vault that bonds deposits into the launch pool
and splits the launch rewards between three reward pools.

Bond and boost tokens deposited to the vault are forwarded to the launch
pool and the depositor receives the same amount of share tokens. Launch
rewards are claimed in two streams. The virtual claim credits the virtual
stream of the reward pools with the amount vested by the launch pool, the
real claim moves the reward tokens paid by the launch pool to the reward
pool addresses. Both claims finish in a reply, once the launch pool
processed the claim call.

The split between the pools is kept by the ratio controller and is
rebalanced on every deposit and withdraw.
*/
package vault
