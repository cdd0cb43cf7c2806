/*
Package gconf implements a configuration store intended to be used as a
per extension, in-database configuration.

Each extension keeps exactly one configuration record under the "_c:<pkg>"
key. A configuration is always validated before it is written. It is loaded
from the genesis file "conf" section and can later be patched with a message
authorized by a caller provided function, usually the governance of the
extension.
*/
package gconf
