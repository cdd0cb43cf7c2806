/*
Package launch implements the boosted launch pool that the vault deposits
into.

Holders bond the bond token to earn launch rewards and bond the boost token
to amplify them. Rewards are credited by the pool admin as pending, moved to
vested on withdraw and paid out in reward tokens on claim. Reward tokens sent
to the pool with a MintMsg hook are converted one to one into boost tokens.
*/
package launch
