package renderer

const litVertex = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;
uniform mat4 uLightSpace;

out vec3 vNormal;
out vec4 vLightSpace;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vNormal = mat3(transpose(inverse(uModel))) * aNormal;
	vLightSpace = uLightSpace * world;
	gl_Position = uProj * uView * world;
}
`

const litFragment = `
#version 410 core
in vec3 vNormal;
in vec4 vLightSpace;

uniform vec3 uColor;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;
uniform sampler2DShadow uShadowMap;
uniform int uShadows;

out vec4 FragColor;

float visibility(vec3 n, vec3 l) {
	if (uShadows == 0) {
		return 1.0;
	}
	vec3 p = vLightSpace.xyz / vLightSpace.w * 0.5 + 0.5;
	if (p.z > 1.0) {
		return 1.0;
	}
	float bias = max(0.002 * (1.0 - dot(n, l)), 0.0005);
	vec2 texel = 1.0 / vec2(textureSize(uShadowMap, 0));
	float lit = 0.0;
	for (int x = -1; x <= 1; x++) {
		for (int y = -1; y <= 1; y++) {
			lit += texture(uShadowMap, vec3(p.xy + vec2(x, y) * texel, p.z - bias));
		}
	}
	return lit / 9.0;
}

void main() {
	vec3 n = normalize(vNormal);
	if (!gl_FrontFacing) {
		n = -n;
	}
	vec3 l = normalize(uLightDir);
	float diffuse = max(dot(n, l), 0.0);
	vec3 c = uColor * (uAmbient + uDiffuse * diffuse * visibility(n, l));
	FragColor = vec4(c, 1.0);
}
`

const depthVertex = `
#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 uModel;
uniform mat4 uLightSpace;

void main() {
	gl_Position = uLightSpace * uModel * vec4(aPos, 1.0);
}
`

const depthFragment = `
#version 410 core
void main() {}
`

const lineVertex = `
#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

void main() {
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
}
`

const lineFragment = `
#version 410 core
uniform vec3 uColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`
