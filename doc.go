/*
Package nvlist implements a typed name/value list container in the style
of the BSD nv(9) and Solaris/ZFS nvpair libraries.

A List maps non-empty names to typed values (booleans, fixed-width
integers, strings, opaque binary, nested lists, and homogeneous arrays)
and can be packed into a contiguous byte buffer in the wire format of
the backend that created it. The two backends are not compatible with
each other: a buffer packed by one is rejected by the other's Unpack.

For more information on the native formats, please see
https://man.freebsd.org/cgi/man.cgi?query=nv
and
https://github.com/openzfs/zfs/tree/master/module/nvpair
*/
package nvlist
