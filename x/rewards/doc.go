/*
Package rewards implements staking pools that distribute a reward token to
stakers proportionally to their stake.

Every pool tracks two reward streams. The real stream follows the reward
token balance held by the pool address. The virtual stream follows a
notional balance credited by the reward operator. Both streams keep a global
index of reward per staked unit that is brought up to date by a checkpoint
before every read. A staker is paid the smaller of the two settled amounts,
so real tokens are never released faster than they were notionally earned.

Fractions of a token that cannot be paid yet are carried per staker and
stream until they add up to a whole unit.
*/
package rewards
