/*
Package decimal provides the unsigned integer and fixed-point decimal types
used by every reward computation.

Both types are 256 bit wide values with checked arithmetic. Any operation that
would wrap fails with errors.ErrOverflow or errors.ErrUnderflow instead. Dec
stores the value scaled by 10^18 so that integer and fractional parts are
available without any text conversion or floating point.

Both types are values. Copying a Dec or a Uint never shares state.
*/
package decimal
