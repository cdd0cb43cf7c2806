/*
Package governance implements a two phase handoff of the governance role.

Every extension instance that can be reconfigured by governance owns a
namespace. The current governance of a namespace proposes a new address and
a time window. The handoff completes only when the proposed address accepts
it before the window expires. Until then the current governance stays in
charge.
*/
package governance
