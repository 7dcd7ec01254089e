package robot

import "context"

// IsSelfColliding reports whether any of the named links is currently in
// contact with the rest of the body. Each link is queried as either side of
// a body-self pair, returning true on the first non-empty result.
//
// An unknown link name, or a call before LoadRobot, degrades to false
// rather than an error: only links with collision geometry can self-collide,
// so invalid input conservatively reads as "no collision".
func (g *Gripper) IsSelfColliding(ctx context.Context, linkNames ...string) bool {
	if g.reg == nil {
		return false
	}

	links := make([]*Link, 0, len(linkNames))
	for _, name := range linkNames {
		link, err := g.reg.Link(name)
		if err != nil {
			return false
		}
		links = append(links, link)
	}

	for _, link := range links {
		asA, err := g.engine.ContactPoints(ctx, g.body, g.body, link.Index, AnyLink)
		if err != nil {
			return false
		}
		asB, err := g.engine.ContactPoints(ctx, g.body, g.body, AnyLink, link.Index)
		if err != nil {
			return false
		}
		if len(asA)+len(asB) != 0 {
			return true
		}
	}
	return false
}
