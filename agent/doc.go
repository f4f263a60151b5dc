/*
Package agent holds the identity framework packages of credat. The agent
package is empty itself, all the functionality is inside sub-packages.

	sdk      the bundled identity SDK implementing core.SDK and core.Handshake
	storage  the trust store: api interface, filedb implementation, cfg for
	         the store location
	utils    helpers for base64url, ISO 8601 times, nonces and the version
	vc       delegation credentials as JWT-VCs and the challenge handshake
*/
package agent
