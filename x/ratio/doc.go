/*
Package ratio implements the controller that splits rewards between three
pools.

The split is described by three ratios A, B and C that always add up to one.
A moves by one multiplicative step at a time in the direction of a signal
computed from the bonding curve of the launch pool and two market prices. B
absorbs the change so that the sum stays one. C is changed only by
governance. A move that would leave A or B outside of their configured
bounds is rejected as a whole, the ratios are never clamped.

Rebalancing is gated by a period. Once the period elapsed the gate timer is
always reset, even if the move is then rejected.
*/
package ratio
