// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import "code.hybscloud.com/atomix"

// Serial identifies a session for the life of the process.
// Zero means no session; channel.writer relies on that.
type Serial uint64

var serials atomix.Uint64

// nextSerial returns the next serial, skipping zero if the counter wraps.
func nextSerial() Serial {
	for {
		if n := serials.Add(1); n != 0 {
			return Serial(n)
		}
	}
}
