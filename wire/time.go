// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "time"

// DefaultUserAgent is advertised in outbound version messages.
const DefaultUserAgent = "/rvnspv:0.1.0/"

func timeNowUnix() int64 {
	return time.Now().Unix()
}
