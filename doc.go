package ereader

/*

Package ereader reads EViews workfiles (.wf1) into a column-oriented
table of float64 series.

There is no official documentation of the wf1 format.  This code is
based on previous efforts to reverse-engineer it.  Only numeric series
are read; bookkeeping objects stored alongside them (the residual
series, generated SERIES objects and non-series objects) are detected
and dropped.

A Decoder turns a workfile, given as a path, a reader or a byte slice,
into a Table.  Each retained variable becomes a Series holding one
value per observation, with missing observations (EViews NA) marked in
the Series missing mask and stored as NaN.  Workfiles compressed with
gzip, zstd or lz4 are decompressed transparently.

WF1Reader wraps a decoded Table in the Statfilereader interface so
that a file can be processed in chunks of consecutive observations.

*/
