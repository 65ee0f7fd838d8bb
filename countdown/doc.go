// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package countdown renders the time left until the nomination and voting
deadline.

	s := countdown.Format(deadline, time.Now())
	// "005d 00h 00m 00s until Jan 15, 2025 11:59 PM"

Fields are zero padded to 3/2/2/2 digits. After the deadline the same
arithmetic yields negative fields; nothing special is shown for an expired
deadline.

A Ticker refreshes the string every second until its context is cancelled:

	t := countdown.NewTicker(deadline)
	go t.Run(ctx, nil)
	t.Current()
*/
package countdown
